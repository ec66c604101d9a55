package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogSchema struct {
	Categories   map[string][]string   `yaml:"categories"`
	Moods        map[string][]string   `yaml:"moods"`
	Monthly      map[int]monthlySchema `yaml:"monthly"`
	Achievements []achievementSchema   `yaml:"achievements"`
	Milestones   []milestoneSchema     `yaml:"milestones"`
	Secret       string                `yaml:"secret"`
	LoveOverflow string                `yaml:"love_overflow"`
}

type monthlySchema struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

type achievementSchema struct {
	Threshold int    `yaml:"threshold"`
	Title     string `yaml:"title"`
	Message   string `yaml:"message"`
	Emoji     string `yaml:"emoji"`
}

type milestoneSchema struct {
	Days  int    `yaml:"days"`
	Label string `yaml:"label"`
}

// Loader reads the message catalog from a YAML file, or the built-in catalog when no
// file is configured or present.
type Loader struct {
	path string
}

var _ ports.CatalogSource = Loader{}

func NewLoader(path string) Loader {
	return Loader{path: strings.TrimSpace(path)}
}

func (l Loader) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	if l.path == "" {
		return Default()
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default()
		}
		return domain.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	return Parse(data)
}

func Default() (domain.Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (domain.Catalog, error) {
	var raw catalogSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := domain.Catalog{
		Categories:   map[string][]string{},
		Moods:        map[string][]string{},
		Monthly:      map[time.Month]domain.MonthlyNote{},
		Secret:       strings.TrimSpace(raw.Secret),
		LoveOverflow: strings.TrimSpace(raw.LoveOverflow),
	}

	for name, messages := range raw.Categories {
		if cleaned := nonEmpty(messages); len(cleaned) > 0 {
			catalog.Categories[strings.ToLower(strings.TrimSpace(name))] = cleaned
		}
	}
	for name, messages := range raw.Moods {
		if cleaned := nonEmpty(messages); len(cleaned) > 0 {
			catalog.Moods[strings.TrimSpace(name)] = cleaned
		}
	}
	for month, note := range raw.Monthly {
		if month < 1 || month > 12 {
			return domain.Catalog{}, fmt.Errorf("decode catalog: invalid month %d", month)
		}
		catalog.Monthly[time.Month(month)] = domain.MonthlyNote{
			Title:   strings.TrimSpace(note.Title),
			Message: strings.TrimSpace(note.Message),
		}
	}
	for _, achievement := range raw.Achievements {
		if achievement.Threshold <= 0 {
			return domain.Catalog{}, fmt.Errorf("decode catalog: achievement threshold must be positive, got %d", achievement.Threshold)
		}
		catalog.Achievements = append(catalog.Achievements, domain.Achievement{
			Threshold: achievement.Threshold,
			Title:     strings.TrimSpace(achievement.Title),
			Message:   strings.TrimSpace(achievement.Message),
			Emoji:     achievement.Emoji,
		})
	}
	for _, milestone := range raw.Milestones {
		if milestone.Days <= 0 {
			return domain.Catalog{}, fmt.Errorf("decode catalog: milestone days must be positive, got %d", milestone.Days)
		}
		catalog.Milestones = append(catalog.Milestones, domain.Milestone{Days: milestone.Days, Label: milestone.Label})
	}

	return catalog, nil
}

func nonEmpty(messages []string) []string {
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
