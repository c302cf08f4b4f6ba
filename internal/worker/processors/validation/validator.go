package validation

import (
	"strings"

	"github.com/pkg/errors"

	"woosync/internal/logger"
)

type Validator struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Validator {
	return &Validator{logger: logger}
}

// ValidateEvent checks the envelope of an inbound sync event before it
// reaches the catalog: known type, object id where the operation needs
// one, payload where the operation carries one.
func (v *Validator) ValidateEvent(eventType, objectID string, data map[string]interface{}) error {
	parts := strings.SplitN(eventType, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.Errorf("malformed event type %q", eventType)
	}

	switch parts[1] {
	case "created":
		if len(data) == 0 {
			return errors.New("create event carries no data")
		}
	case "updated":
		if objectID == "" {
			return errors.New("update event carries no object id")
		}
		if len(data) == 0 {
			return errors.New("update event carries no data")
		}
	case "deleted":
		if objectID == "" {
			return errors.New("delete event carries no object id")
		}
	default:
		return errors.Errorf("unknown event action %q", parts[1])
	}

	v.logger.Debug("Validated %s event for %q", eventType, objectID)
	return nil
}
