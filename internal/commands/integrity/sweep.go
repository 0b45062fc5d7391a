package integritycmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-console/internal/commands"
	"github.com/goliatone/go-console/internal/integrity"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

const (
	validateTaggedItemsMessageType = "console.integrity.validate"
	removeItemMessageType          = "console.integrity.remove_item"
)

// ValidateTaggedItemsCommand sweeps every container's tagged-item references
// and prunes the ones pointing at entities that no longer exist.
type ValidateTaggedItemsCommand struct{}

// Type implements command.Message.
func (ValidateTaggedItemsCommand) Type() string { return validateTaggedItemsMessageType }

// Validate satisfies command.Message.
func (ValidateTaggedItemsCommand) Validate() error {
	return validation.ValidateStruct(&ValidateTaggedItemsCommand{})
}

// ValidateTaggedItemsHandler runs the full referential-integrity sweep.
type ValidateTaggedItemsHandler struct {
	inner *commands.Handler[ValidateTaggedItemsCommand]
}

// NewValidateTaggedItemsHandler constructs a handler wired to the integrity engine.
func NewValidateTaggedItemsHandler(service *integrity.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateTaggedItemsCommand]) *ValidateTaggedItemsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, _ ValidateTaggedItemsCommand) error {
		changed, err := service.ValidateTaggedItems(ctx)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"containers_changed": changed,
		}).Info("integrity.command.validated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateTaggedItemsCommand]{
		commands.WithLogger[ValidateTaggedItemsCommand](baseLogger),
		commands.WithOperation[ValidateTaggedItemsCommand]("integrity.validate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateTaggedItemsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateTaggedItemsCommand].
func (h *ValidateTaggedItemsHandler) Execute(ctx context.Context, msg ValidateTaggedItemsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveItemCommand strips one deleted item id from every container that
// still references it.
type RemoveItemCommand struct {
	ItemID string `json:"item_id"`
}

// Type implements command.Message.
func (RemoveItemCommand) Type() string { return removeItemMessageType }

// Validate satisfies command.Message.
func (c RemoveItemCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ItemID, validation.Required),
	)
}

// RemoveItemHandler runs the per-item cascade.
type RemoveItemHandler struct {
	inner *commands.Handler[RemoveItemCommand]
}

// NewRemoveItemHandler constructs a handler wired to the integrity engine.
func NewRemoveItemHandler(service *integrity.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveItemCommand]) *RemoveItemHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RemoveItemCommand) error {
		changed, err := service.RemoveItemFromContainers(ctx, msg.ItemID)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"item_id":            msg.ItemID,
			"containers_changed": changed,
		}).Info("integrity.command.item_removed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RemoveItemCommand]{
		commands.WithLogger[RemoveItemCommand](baseLogger),
		commands.WithOperation[RemoveItemCommand]("integrity.remove_item"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveItemHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveItemCommand].
func (h *RemoveItemHandler) Execute(ctx context.Context, msg RemoveItemCommand) error {
	return h.inner.Execute(ctx, msg)
}
