package domain

import "errors"

var (
	ErrJournalEntryNotFound  = errors.New("journal entry not found")
	ErrEmptyJournalText      = errors.New("journal entry text is empty")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrUnknownCategory       = errors.New("unknown message category")
	ErrUnknownMood           = errors.New("unknown mood")
	ErrNotificationsDisabled = errors.New("notifications disabled")
	ErrNotifierNotConfigured = errors.New("notifier not configured")
	ErrRecipientMissing      = errors.New("recipient not set")
	ErrGateLocked            = errors.New("password required")
	ErrWrongPassword         = errors.New("wrong password")
	ErrRelationshipNotSet    = errors.New("relationship start date not set")
)
