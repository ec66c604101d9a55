package ports

import (
	"context"

	"github.com/bnema/everydaymood/internal/domain"
)

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
