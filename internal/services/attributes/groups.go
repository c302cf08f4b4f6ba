// Package attributes resolves attribute groups and values between the
// generic code/name/value model the sync protocol speaks and the
// taxonomy-backed attribute system of the store, creating missing
// structures on demand without duplicating existing ones.
package attributes

import (
	"strings"

	"github.com/pkg/errors"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/store"
)

// GroupResolver maps attribute group codes to attribute taxonomies.
type GroupResolver struct {
	store store.Store
	ml    multilang.Translator
	log   *logger.Logger
}

func NewGroupResolver(st store.Store, ml multilang.Translator, log *logger.Logger) *GroupResolver {
	return &GroupResolver{store: st, ml: ml, log: log}
}

// GroupByCode finds the attribute taxonomy matching code. Both sides go
// through Slugify, the same canonical form AddGroup persists, so a code
// round-trips through create-then-lookup regardless of spacing, case or
// accents. The prefixed taxonomy name is accepted too. Returns nil when
// nothing matches. The scan is linear; stores carry tens of groups, not
// thousands.
func (r *GroupResolver) GroupByCode(code string) (*models.AttributeTaxonomy, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("attribute group code is empty")
	}
	needle := Slugify(code)

	taxonomies, err := r.store.AttributeTaxonomies()
	if err != nil {
		return nil, err
	}
	for i := range taxonomies {
		t := &taxonomies[i]
		if Slugify(t.Name) == needle || Slugify(t.Taxonomy()) == needle {
			return t, nil
		}
	}
	return nil, nil
}

// AddGroup creates a new attribute taxonomy for code with the composed
// multilingual label. A store rejection is a hard stop for the current
// sync item, not a retryable condition.
func (r *GroupResolver) AddGroup(code string, names map[string]string) (*models.AttributeTaxonomy, error) {
	if strings.TrimSpace(code) == "" {
		r.log.Error("attributes: cannot create group without a code")
		return nil, errors.New("attribute group code is empty")
	}
	if names[r.ml.DefaultLocale()] == "" {
		r.log.Error("attributes: cannot create group %q without a default locale name", code)
		return nil, errors.New("attribute group name is empty")
	}

	group := &models.AttributeTaxonomy{
		Name:  Slugify(code),
		Label: r.ml.Encode(names),
	}
	if err := r.store.CreateAttributeTaxonomy(group); err != nil {
		r.log.Error("attributes: unable to create group %q: %v", code, err)
		return nil, err
	}
	return group, nil
}

// UpdateGroup overlays names onto the group's stored label locale by
// locale and persists the result when it changed. Empty names fail
// loudly.
func (r *GroupResolver) UpdateGroup(group *models.AttributeTaxonomy, names map[string]string) error {
	if len(names) == 0 {
		r.log.Error("attributes: refusing to rename group %q with empty names", group.Name)
		return errors.New("attribute group names are empty")
	}

	merged := r.ml.DecodeAll(group.Label)
	for locale, v := range names {
		if v != "" {
			merged[locale] = v
		}
	}
	label := r.ml.Encode(merged)
	if label == group.Label {
		return nil
	}

	group.Label = label
	return r.store.UpdateAttributeTaxonomy(group)
}
