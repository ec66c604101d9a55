package application

import (
	"time"

	"github.com/bnema/everydaymood/internal/domain"
)

type AddJournalEntryCommand struct {
	Mood         string
	Text         string
	DaysTogether int
}

// UpdateNotifierCommand changes the notifier settings. Zero fields keep their stored value.
// A nil Password keeps the stored one; an empty one removes it.
type UpdateNotifierCommand struct {
	Channel    domain.NotifierChannel
	Enabled    *bool
	SMTPServer string
	SMTPPort   int
	Sender     string
	Recipient  string
	WebhookURL string
	Password   *string
}

type UpdateRelationshipCommand struct {
	StartDate      time.Time
	CelebrationDay int
}
