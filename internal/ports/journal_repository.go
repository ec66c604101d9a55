package ports

import (
	"context"

	"github.com/bnema/everydaymood/internal/domain"
)

type JournalRepository interface {
	// Append assigns the next ID and stores the entry.
	Append(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)
	List(ctx context.Context) ([]domain.JournalEntry, error)
}
