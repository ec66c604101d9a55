package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"time"

	"github.com/bnema/everydaymood/internal/adapters/audio"
	"github.com/bnema/everydaymood/internal/adapters/catalog"
	"github.com/bnema/everydaymood/internal/adapters/notify"
	smtpnotify "github.com/bnema/everydaymood/internal/adapters/notify/smtp"
	webhooknotify "github.com/bnema/everydaymood/internal/adapters/notify/webhook"
	"github.com/bnema/everydaymood/internal/adapters/repo/jsonfile"
	sqliterepo "github.com/bnema/everydaymood/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/everydaymood/internal/adapters/repo/toml"
	chainstore "github.com/bnema/everydaymood/internal/adapters/secrets/chain"
	filestore "github.com/bnema/everydaymood/internal/adapters/secrets/file"
	passstore "github.com/bnema/everydaymood/internal/adapters/secrets/pass"
	"github.com/bnema/everydaymood/internal/application"
	"github.com/bnema/everydaymood/internal/config"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/logging"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const notifyTimeout = 30 * time.Second

type app struct {
	cfg      config.Config
	logger   zerolog.Logger
	arcade   *application.ArcadeService
	journal  *application.JournalService
	messages *application.MessageService
	together *application.TogetherService
	settings *application.SettingsService
	gate     *application.GateService
	notifier ports.Notifier
	sounds   *audio.Player
	now      func() time.Time
	closers  []io.Closer
}

type storage struct {
	scores  ports.ScoreStore
	journal ports.JournalRepository
	closer  io.Closer
}

func wireApp(ctx context.Context) (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:        cfg.LogLevel,
		ErrorLogPath: filepath.Join(cfg.DataDir, logging.ErrorLogFileName),
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, now: time.Now, closers: []io.Closer{logCloser}}

	store, err := wireStorage(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if store.closer != nil {
		a.closers = append(a.closers, store.closer)
	}

	settingsRepo, err := tomlrepo.NewRepository(v)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	secrets, err := wireSecrets(cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	messageCatalog, err := catalog.NewLoader(cfg.CatalogPath).Load(ctx)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load message catalog: %w", err)
	}

	rng := newRandom(cfg.Game.Seed)
	tuning := domain.DefaultTuning()
	tuning.SpawnProbability = cfg.Game.SpawnProbability

	a.notifier = notify.NewRouter(settingsRepo, map[domain.NotifierChannel]notify.Sender{
		domain.NotifierChannelEmail:   smtpnotify.NewSender(secrets, notifyTimeout),
		domain.NotifierChannelWebhook: webhooknotify.Sender{HTTPClient: http.DefaultClient},
	})
	a.arcade = application.NewArcadeService(store.scores, messageCatalog.Achievements, tuning, rng, logger)
	a.journal = application.NewJournalService(store.journal, a.notifier, ports.SystemClock{}, logger)
	a.messages = application.NewMessageService(messageCatalog, settingsRepo, rng, ports.SystemClock{})
	a.together = application.NewTogetherService(settingsRepo, messageCatalog, ports.SystemClock{})
	a.settings = application.NewSettingsService(settingsRepo, secrets)
	a.gate = application.NewGateService(secrets)
	a.sounds = audio.NewPlayer()

	return a, nil
}

func wireStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sqliterepo.Open(ctx, filepath.Join(cfg.DataDir, sqliterepo.DefaultFileName))
		if err != nil {
			return storage{}, fmt.Errorf("wire sqlite store: %w", err)
		}
		return storage{scores: db, journal: db, closer: db}, nil
	default:
		return storage{
			scores:  jsonfile.NewScoreStore(cfg.DataDir),
			journal: jsonfile.NewJournalRepository(cfg.DataDir),
		}, nil
	}
}

func wireSecrets(cfg config.Config, logger zerolog.Logger) (ports.SecretStore, error) {
	switch cfg.SecretsBackend {
	case config.SecretsFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsPass:
		return passstore.NewStore(), nil
	default:
		if !passstore.NewStore().Available() {
			logger.Debug().Str("vault", filepath.Join(cfg.SecretsDir, filestore.VaultFileName)).Msg("pass not found, secrets go to the vault file")
		}
		store, err := chainstore.NewDefault(cfg.SecretsDir, logger)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, nil
	}
}

// newRandom seeds from the clock when seed is zero.
func newRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (a *app) Close() error {
	if a == nil {
		return nil
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
