package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

// MessageService picks messages out of the catalog.
type MessageService struct {
	catalog  domain.Catalog
	settings ports.SettingsRepository
	rng      domain.Randomizer
	clock    ports.Clock
}

func NewMessageService(catalog domain.Catalog, settings ports.SettingsRepository, rng domain.Randomizer, clock ports.Clock) *MessageService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &MessageService{
		catalog:  catalog,
		settings: settings,
		rng:      rng,
		clock:    clock,
	}
}

func (s *MessageService) Categories() []string {
	return s.catalog.CategoryNames()
}

func (s *MessageService) Moods() []string {
	return s.catalog.MoodNames()
}

func (s *MessageService) Random(category string) (string, error) {
	messages, err := s.category(category)
	if err != nil {
		return "", err
	}

	return messages[s.rng.IntN(len(messages))], nil
}

// Daily returns the same message for a whole calendar day.
func (s *MessageService) Daily(category string) (string, error) {
	messages, err := s.category(category)
	if err != nil {
		return "", err
	}

	index := (s.clock.Now().YearDay() - 1) % len(messages)
	return messages[index], nil
}

// Mood resolves name against the catalog moods and returns the canonical mood name with a
// random message for it. Names match exactly, or case-insensitively on their first word.
func (s *MessageService) Mood(name string) (string, string, error) {
	mood, ok := s.ResolveMood(name)
	if !ok {
		return "", "", fmt.Errorf("mood %q: %w", name, domain.ErrUnknownMood)
	}

	messages := s.catalog.Moods[mood]
	return mood, messages[s.rng.IntN(len(messages))], nil
}

func (s *MessageService) ResolveMood(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if _, ok := s.catalog.Moods[name]; ok {
		return name, true
	}

	for _, mood := range s.catalog.MoodNames() {
		if strings.EqualFold(mood, name) || strings.EqualFold(moodKeyword(mood), name) {
			return mood, true
		}
	}

	return "", false
}

// Reveal returns the hidden message once every mood in the catalog has been visited. On
// the celebration day the monthly note replaces the generic secret.
func (s *MessageService) Reveal(ctx context.Context, visited []string) (Reveal, bool, error) {
	seen := map[string]struct{}{}
	for _, name := range visited {
		if mood, ok := s.ResolveMood(name); ok {
			seen[mood] = struct{}{}
		}
	}
	if len(s.catalog.Moods) == 0 || len(seen) < len(s.catalog.Moods) {
		return Reveal{}, false, nil
	}

	note, months, ok, err := s.Monthly(ctx)
	if err != nil {
		return Reveal{}, false, err
	}
	if ok {
		return Reveal{Title: note.Title, Message: note.Message, Months: months, Monthly: true}, true, nil
	}

	return Reveal{Message: s.catalog.Secret}, true, nil
}

// Monthly returns the note for the current month when today is the celebration day.
func (s *MessageService) Monthly(ctx context.Context) (domain.MonthlyNote, int, bool, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.MonthlyNote{}, 0, false, fmt.Errorf("load settings: %w", err)
	}

	now := s.clock.Now()
	relationship := settings.Relationship
	if !relationship.IsCelebrationDay(now) {
		return domain.MonthlyNote{}, 0, false, nil
	}

	note, ok := s.catalog.Monthly[now.Month()]
	if !ok {
		return domain.MonthlyNote{}, 0, false, nil
	}

	return note, relationship.MonthsTogether(now), true, nil
}

func (s *MessageService) category(name string) ([]string, error) {
	messages := s.catalog.Categories[strings.ToLower(strings.TrimSpace(name))]
	if len(messages) == 0 {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrUnknownCategory)
	}
	return messages, nil
}

func moodKeyword(mood string) string {
	fields := strings.Fields(mood)
	if len(fields) == 0 {
		return ""
	}
	// Multi-word moods such as "Miss You 💭" keep every word but the trailing emoji.
	if len(fields) > 1 && !isWord(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func isWord(field string) bool {
	for _, r := range field {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
