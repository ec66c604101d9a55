package ports

import (
	"context"

	"github.com/bnema/everydaymood/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
