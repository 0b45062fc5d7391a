package dictionary

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// Option mutates the service configuration.
type Option func(*Service)

// WithClock overrides the clock used for entry timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service manages the flat translation dictionary. Entries are created
// lazily on first write and updated on every save; they are never deleted,
// even when the owning entity goes away.
type Service struct {
	repo   Repository
	logger interfaces.Logger
	clock  func() time.Time
}

// NewService constructs a dictionary service.
func NewService(repo Repository, opts ...Option) *Service {
	svc := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns every dictionary entry.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	return s.repo.List(ctx)
}

// Index returns the dictionary keyed by entry key for reconciliation.
func (s *Service) Index(ctx context.Context) (map[string]*Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*Entry, len(entries))
	for _, entry := range entries {
		index[entry.Key] = entry
	}
	return index, nil
}

// GetByKey resolves one entry.
func (s *Service) GetByKey(ctx context.Context, key string) (*Entry, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	return s.repo.GetByKey(ctx, key)
}

// Upsert writes one target-language value for the given key, creating the
// entry lazily when absent. Original always reflects the latest
// default-language text supplied by the caller.
func (s *Service) Upsert(ctx context.Context, key string, source domain.SourceList, original, lang, value string) (*Entry, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrKeyRequired
	}
	if source == "" {
		return nil, ErrSourceListRequired
	}
	if strings.TrimSpace(lang) == "" {
		return nil, ErrLanguageRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	entry, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		entry = &Entry{
			ID:         NewEntryID(),
			Key:        key,
			SourceList: source,
		}
	}

	if entry.Translations == nil {
		entry.Translations = make(map[string]string)
	}
	entry.Translations[lang] = value
	if original != "" {
		entry.Original = original
	}
	entry.LastUpdated = s.clock()

	stored, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"key":    key,
		"source": source.String(),
		"lang":   lang,
	}).Debug("dictionary.entry.upserted")
	return stored, nil
}
