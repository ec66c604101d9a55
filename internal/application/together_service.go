package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

// TogetherService computes the days-together counters from the stored relationship.
type TogetherService struct {
	settings ports.SettingsRepository
	catalog  domain.Catalog
	clock    ports.Clock
}

func NewTogetherService(settings ports.SettingsRepository, catalog domain.Catalog, clock ports.Clock) *TogetherService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TogetherService{settings: settings, catalog: catalog, clock: clock}
}

func (s *TogetherService) Overview(ctx context.Context) (Together, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Together{}, fmt.Errorf("load settings: %w", err)
	}

	relationship := settings.Relationship
	if relationship.StartDate.IsZero() {
		return Together{}, domain.ErrRelationshipNotSet
	}

	now := s.clock.Now()
	next, daysUntil := relationship.NextCelebration(now)

	overview := Together{
		StartDate:            relationship.StartDate,
		Days:                 relationship.DaysTogether(now),
		Months:               relationship.MonthsTogether(now),
		Milestones:           relationship.Milestones(now, s.catalog.Milestones),
		NextCelebration:      next,
		DaysUntilCelebration: daysUntil,
		CelebrationToday:     daysUntil == 0,
	}
	if overview.CelebrationToday {
		if note, ok := s.catalog.Monthly[now.Month()]; ok {
			overview.MonthlyNote = &note
		}
	}

	return overview, nil
}

// DaysTogether returns zero when no relationship is configured.
func (s *TogetherService) DaysTogether(ctx context.Context) (int, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRelationshipNotSet) {
			return 0, nil
		}
		return 0, err
	}
	return overview.Days, nil
}

// RaiseLove adds one step to the stored love meter.
func (s *TogetherService) RaiseLove(ctx context.Context) (Love, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Love{}, fmt.Errorf("load settings: %w", err)
	}

	settings.Love = settings.Love.Raise()
	if err := s.settings.Save(ctx, settings); err != nil {
		return Love{}, fmt.Errorf("save love meter: %w", err)
	}

	return s.love(settings.Love), nil
}

func (s *TogetherService) ResetLove(ctx context.Context) (Love, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Love{}, fmt.Errorf("load settings: %w", err)
	}

	settings.Love = domain.LoveMeter{}
	if err := s.settings.Save(ctx, settings); err != nil {
		return Love{}, fmt.Errorf("save love meter: %w", err)
	}

	return s.love(settings.Love), nil
}

func (s *TogetherService) love(meter domain.LoveMeter) Love {
	love := Love{Level: meter.Level, Overflowing: meter.Overflowing()}
	if love.Overflowing {
		love.Message = s.catalog.LoveOverflow
	}
	return love
}
