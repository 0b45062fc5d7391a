package translationscmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-console/internal/commands"
	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/internal/reconcile"
	"github.com/goliatone/go-console/pkg/interfaces"
)

const saveTranslationMessageType = "console.translations.save"

// ErrRowNotFound reports a save addressed to a row id that no longer exists
// in the selected source list.
var ErrRowNotFound = errors.New("translations command: row not found")

// SaveTranslationCommand writes per-field values for one row and target
// language through the reconciler.
type SaveTranslationCommand struct {
	Source string            `json:"source"`
	RowID  string            `json:"row_id"`
	Lang   string            `json:"lang"`
	Fields map[string]string `json:"fields"`
}

// Type implements command.Message.
func (SaveTranslationCommand) Type() string { return saveTranslationMessageType }

// Validate satisfies command.Message.
func (c SaveTranslationCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.RowID, validation.Required),
		validation.Field(&c.Lang, validation.Required),
		validation.Field(&c.Fields, validation.Required),
	)
}

// SaveTranslationHandler resolves the addressed row and delegates the write
// to the reconciler.
type SaveTranslationHandler struct {
	inner *commands.Handler[SaveTranslationCommand]
}

// NewSaveTranslationHandler constructs a handler wired to the reconciler.
func NewSaveTranslationHandler(service *reconcile.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveTranslationCommand]) *SaveTranslationHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SaveTranslationCommand) error {
		source, err := domain.ParseSourceList(msg.Source)
		if err != nil {
			return err
		}
		rows, err := service.BuildRows(ctx, source, "")
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.ID != msg.RowID {
				continue
			}
			if err := service.SaveTranslation(ctx, row, msg.Lang, msg.Fields); err != nil {
				return err
			}
			logging.WithFields(baseLogger, map[string]any{
				"source": source.String(),
				"row_id": msg.RowID,
				"lang":   msg.Lang,
			}).Info("translations.command.saved")
			return nil
		}
		return ErrRowNotFound
	}

	handlerOpts := []commands.HandlerOption[SaveTranslationCommand]{
		commands.WithLogger[SaveTranslationCommand](baseLogger),
		commands.WithOperation[SaveTranslationCommand]("translations.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveTranslationHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveTranslationCommand].
func (h *SaveTranslationHandler) Execute(ctx context.Context, msg SaveTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}
