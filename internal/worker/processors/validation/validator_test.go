package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"woosync/internal/logger"
)

func TestValidateEvent(t *testing.T) {
	v := New(logger.New("error"))
	payload := map[string]interface{}{"title": "Shirt"}

	tests := []struct {
		name      string
		eventType string
		objectID  string
		data      map[string]interface{}
		wantErr   bool
	}{
		{"valid create", "product.created", "", payload, false},
		{"valid update", "product.updated", "abc", payload, false},
		{"valid delete", "product.deleted", "abc", nil, false},
		{"create without data", "product.created", "", nil, true},
		{"update without id", "product.updated", "", payload, true},
		{"update without data", "product.updated", "abc", nil, true},
		{"delete without id", "product.deleted", "", nil, true},
		{"unknown action", "product.archived", "abc", payload, true},
		{"no separator", "created", "abc", payload, true},
		{"empty object name", ".created", "abc", payload, true},
		{"empty action", "product.", "abc", payload, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEvent(tt.eventType, tt.objectID, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
