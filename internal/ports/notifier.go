package ports

import (
	"context"

	"github.com/bnema/everydaymood/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, entry domain.JournalEntry) error
}
