package console

import (
	"context"
	"strings"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/commands"
	integritycmd "github.com/goliatone/go-console/internal/commands/integrity"
	translationscmd "github.com/goliatone/go-console/internal/commands/translations"
	"github.com/goliatone/go-console/internal/dictionary"
	"github.com/goliatone/go-console/internal/integrity"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/internal/logging/gologger"
	"github.com/goliatone/go-console/internal/outbox"
	"github.com/goliatone/go-console/internal/reconcile"
	"github.com/goliatone/go-console/internal/storage"
	"github.com/goliatone/go-console/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// CatalogStore exports the entity store contract.
type CatalogStore = catalog.Store

// Loader exports the backend fetch contract used by Load.
type Loader = catalog.Loader

// DictionaryService exports the flat dictionary contract.
type DictionaryService = dictionary.Service

// ReconcileService exports the translation reconciler contract.
type ReconcileService = reconcile.Service

// IntegrityService exports the referential integrity engine contract.
type IntegrityService = integrity.Service

// Row exports the merged translation row DTO.
type Row = reconcile.Row

// SaveTranslationCommand exports the message accepted by SaveTranslations.
type SaveTranslationCommand = translationscmd.SaveTranslationCommand

// ValidateTaggedItemsCommand exports the message accepted by ValidateIntegrity.
type ValidateTaggedItemsCommand = integritycmd.ValidateTaggedItemsCommand

// RemoveItemCommand exports the message accepted by RemoveItem.
type RemoveItemCommand = integritycmd.RemoveItemCommand

// Option overrides module wiring.
type Option func(*Module)

// WithLoggerProvider overrides the logger provider resolved from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithOutbox replaces the default in-memory persistence outbox.
func WithOutbox(queue interfaces.Outbox) Option {
	return func(m *Module) {
		m.outbox = queue
	}
}

// WithDictionaryRepository replaces the repository resolved from the storage
// configuration.
func WithDictionaryRepository(repo dictionary.Repository) Option {
	return func(m *Module) {
		m.dictRepo = repo
	}
}

// WithBunDB supplies the database handle required by the bun storage
// provider.
func WithBunDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithPersistenceAdapter attaches the backend adapter the outbox worker
// delivers intents to. Without an adapter no worker is constructed.
func WithPersistenceAdapter(adapter interfaces.PersistenceAdapter) Option {
	return func(m *Module) {
		m.adapter = adapter
	}
}

// Module is the top level console runtime facade: entity stores, the flat
// translation dictionary, the reconciler and the integrity engine wired
// together behind one constructor.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	outbox   interfaces.Outbox
	dictRepo dictionary.Repository
	db       *bun.DB
	adapter  interfaces.PersistenceAdapter

	store      *catalog.Store
	dict       *dictionary.Service
	reconciler *reconcile.Service
	integrity  *integrity.Service
	worker     *outbox.Worker
}

// New constructs a console module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := resolveProvider(cfg)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.outbox == nil && cfg.Features.Outbox {
		m.outbox = outbox.NewInMemory(
			outbox.WithDefaultMaxAttempts(cfg.Outbox.MaxAttempts),
			outbox.WithBaseBackoff(cfg.Outbox.BaseBackoff),
		)
	}

	if m.dictRepo == nil {
		repo, err := resolveDictionaryRepository(cfg, m.db)
		if err != nil {
			return nil, err
		}
		m.dictRepo = repo
	}

	storeOpts := []catalog.StoreOption{
		catalog.WithLogger(logging.CatalogLogger(m.provider)),
	}
	if m.outbox != nil {
		storeOpts = append(storeOpts, catalog.WithOutbox(m.outbox))
	}
	m.store = catalog.NewStore(storeOpts...)

	m.dict = dictionary.NewService(m.dictRepo,
		dictionary.WithLogger(logging.DictionaryLogger(m.provider)),
	)

	m.reconciler = reconcile.NewService(m.store, m.dict,
		reconcile.WithLogger(logging.ReconcileLogger(m.provider)),
	)

	if cfg.Features.Integrity {
		integrityOpts := []integrity.Option{
			integrity.WithLogger(logging.IntegrityLogger(m.provider)),
		}
		if m.outbox != nil {
			integrityOpts = append(integrityOpts, integrity.WithOutbox(m.outbox))
		}
		m.integrity = integrity.NewService(m.store, integrityOpts...)

		// Entity deletions cascade into container tagged-item references.
		m.store.OnItemDeleted(func(ctx context.Context, itemID string) {
			if _, err := m.integrity.RemoveItemFromContainers(ctx, itemID); err != nil {
				logging.IntegrityLogger(m.provider).Error("integrity.cascade.failed",
					"item_id", itemID, "error", err)
			}
		})
	}

	if m.outbox != nil && m.adapter != nil {
		m.worker = outbox.NewWorker(m.outbox, m.adapter,
			outbox.WithWorkerLogger(logging.OutboxLogger(m.provider)),
			outbox.WithBatchSize(cfg.Outbox.BatchSize),
		)
	}

	return m, nil
}

// Load pulls every collection through the loader and, when configured, runs
// the referential integrity sweep over the freshly loaded graph.
func (m *Module) Load(ctx context.Context, loader Loader) error {
	m.store.LoadAll(ctx, loader)
	if m.integrity != nil && m.cfg.Integrity.ValidateOnLoad {
		if _, err := m.integrity.ValidateTaggedItems(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Store returns the typed entity store.
func (m *Module) Store() *CatalogStore {
	return m.store
}

// Dictionary returns the flat dictionary service.
func (m *Module) Dictionary() *DictionaryService {
	return m.dict
}

// Reconciler returns the translation reconciler.
func (m *Module) Reconciler() *ReconcileService {
	return m.reconciler
}

// Integrity returns the referential integrity engine, or nil when the
// feature is disabled.
func (m *Module) Integrity() *IntegrityService {
	return m.integrity
}

// Outbox returns the persistence outbox, or nil when the feature is
// disabled.
func (m *Module) Outbox() interfaces.Outbox {
	return m.outbox
}

// Worker returns the outbox delivery worker, or nil when no persistence
// adapter was supplied.
func (m *Module) Worker() *outbox.Worker {
	return m.worker
}

// SaveTranslations returns a command handler that writes per-field
// translations through the reconciler.
func (m *Module) SaveTranslations() *translationscmd.SaveTranslationHandler {
	return translationscmd.NewSaveTranslationHandler(m.reconciler,
		commands.CommandLogger(m.provider, "translations"))
}

// ValidateIntegrity returns a command handler that runs the full
// referential-integrity sweep. It returns nil when the feature is disabled.
func (m *Module) ValidateIntegrity() *integritycmd.ValidateTaggedItemsHandler {
	if m.integrity == nil {
		return nil
	}
	return integritycmd.NewValidateTaggedItemsHandler(m.integrity,
		commands.CommandLogger(m.provider, "integrity"))
}

// RemoveItem returns a command handler that cascades one item deletion into
// container references. It returns nil when the feature is disabled.
func (m *Module) RemoveItem() *integritycmd.RemoveItemHandler {
	if m.integrity == nil {
		return nil
	}
	return integritycmd.NewRemoveItemHandler(m.integrity,
		commands.CommandLogger(m.provider, "integrity"))
}

func resolveProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	default:
		return nil, nil
	}
}

func resolveDictionaryRepository(cfg Config, db *bun.DB) (dictionary.Repository, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)) {
	case "bun":
		if db == nil {
			if strings.TrimSpace(cfg.Storage.DSN) == "" {
				return nil, ErrStorageDSNRequired
			}
			opened, err := storage.Open(cfg.Storage.Dialect, cfg.Storage.DSN)
			if err != nil {
				return nil, err
			}
			db = opened
		}
		if cfg.Cache.Enabled {
			cacheCfg := repocache.DefaultConfig()
			if cfg.Cache.DefaultTTL > 0 {
				cacheCfg.TTL = cfg.Cache.DefaultTTL
			}
			if service, err := repocache.NewCacheService(cacheCfg); err == nil {
				return dictionary.NewBunRepositoryWithCache(db, service, repocache.NewDefaultKeySerializer()), nil
			}
		}
		return dictionary.NewBunRepository(db), nil
	default:
		return dictionary.NewMemoryRepository(), nil
	}
}
