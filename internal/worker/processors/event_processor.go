package processors

import (
	"time"

	"github.com/pkg/errors"

	"woosync/internal/connectors/splash"
	"woosync/internal/logger"
	"woosync/internal/services/variants"
	"woosync/internal/worker/processors/validation"
)

// Event is one inbound sync request from the remote side.
type Event struct {
	Type      string                 `json:"type"`
	ObjectID  string                 `json:"object_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// Event types accepted from the sync topic.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

type EventProcessor struct {
	logger    *logger.Logger
	validator *validation.Validator
	products  *splash.ProductObject
}

func NewEventProcessor(logger *logger.Logger, products *splash.ProductObject) *EventProcessor {
	return &EventProcessor{
		logger:    logger,
		validator: validation.New(logger),
		products:  products,
	}
}

func (ep *EventProcessor) Process(event Event) error {
	if err := ep.validator.ValidateEvent(event.Type, event.ObjectID, event.Data); err != nil {
		return err
	}

	switch event.Type {
	case EventProductCreated:
		id, err := ep.products.Set("", event.Data)
		if err != nil {
			return errors.Wrap(err, "product create")
		}
		ep.logger.Info("Created product %s", id)
		return nil

	case EventProductUpdated:
		if _, err := ep.products.Set(event.ObjectID, event.Data); err != nil {
			return errors.Wrapf(err, "product update %s", event.ObjectID)
		}
		ep.logger.Info("Updated product %s", event.ObjectID)
		return nil

	case EventProductDeleted:
		if err := ep.products.Delete(event.ObjectID); err != nil {
			if errors.Is(err, variants.ErrNotFound) {
				// Already gone; the next full read converges anyway.
				ep.logger.Warn("Delete for missing product %s", event.ObjectID)
				return nil
			}
			return errors.Wrapf(err, "product delete %s", event.ObjectID)
		}
		ep.logger.Info("Deleted product %s", event.ObjectID)
		return nil
	}

	return errors.Errorf("unknown event type %q", event.Type)
}
