package variants

import (
	"strings"

	"github.com/pkg/errors"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/attributes"
	"woosync/internal/store"
)

// Triple is one submitted attribute assignment for a variation: the
// group code plus locale-keyed group and value names. Scalar wire
// values arrive already lifted into a default-locale-only map.
type Triple struct {
	Code   string
	Names  map[string]string
	Values map[string]string
}

func (t *Triple) validate(defaultLocale string) error {
	if strings.TrimSpace(t.Code) == "" {
		return errors.New("attribute code is empty")
	}
	if t.Values[defaultLocale] == "" {
		return errors.Errorf("attribute %q has no default locale value", t.Code)
	}
	return nil
}

// Reconciler rewrites a variation's attribute state from a submitted
// triple list, creating missing groups and values on the way and
// keeping the base product's declarations a superset of every
// variation's selection.
type Reconciler struct {
	store    store.Store
	ml       multilang.Translator
	log      *logger.Logger
	products *Service
	groups   *attributes.GroupResolver
	values   *attributes.ValueResolver
}

func NewReconciler(st store.Store, ml multilang.Translator, log *logger.Logger, products *Service) *Reconciler {
	return &Reconciler{
		store:    st,
		ml:       ml,
		log:      log,
		products: products,
		groups:   attributes.NewGroupResolver(st, ml, log),
		values:   attributes.NewValueResolver(st, ml, log),
	}
}

// reconcileContext carries the per-request resolution caches. Owned by
// one Reconcile call; never process-wide.
type reconcileContext struct {
	groups map[string]*models.AttributeTaxonomy
	terms  map[string]*models.Term
}

// Reconcile resolves every triple against the store and persists the
// result in two batched writes: the base product's declarations once,
// and the variation's selection once. Triples that fail validation are
// skipped with a log line; the next sync pass reads full state back and
// converges. Store rejections abort the remaining triples.
func (r *Reconciler) Reconcile(variationID string, triples []Triple) error {
	variation, err := r.store.PostByID(variationID)
	if err != nil {
		return err
	}
	if variation == nil {
		return errors.Wrapf(ErrNotFound, "variation %s", variationID)
	}

	ref, err := r.products.Kind(variation)
	if err != nil {
		return err
	}
	if ref.Kind != models.KindVariant {
		return errors.Errorf("post %s is not a variation", variationID)
	}
	base, err := r.store.PostByID(ref.ParentID)
	if err != nil {
		return err
	}
	if base == nil {
		return errors.Wrapf(ErrNotFound, "base product %s", ref.ParentID)
	}

	descs, err := r.products.Descriptors(base.ID)
	if err != nil {
		return err
	}

	ctx := &reconcileContext{
		groups: make(map[string]*models.AttributeTaxonomy),
		terms:  make(map[string]*models.Term),
	}
	selection := make(map[string]string)

	for i := range triples {
		triple := &triples[i]
		if err := triple.validate(r.ml.DefaultLocale()); err != nil {
			r.log.Warn("variants: skipping attribute on %s: %v", variationID, err)
			continue
		}

		group, err := r.resolveGroup(ctx, triple)
		if err != nil {
			return err
		}
		taxonomy := group.Taxonomy()

		// Group assignment happens at the base product level.
		if _, ok := descs[taxonomy]; !ok {
			descs[taxonomy] = &models.AttributeDescriptor{
				Name:      taxonomy,
				Visible:   true,
				Variation: true,
			}
		}

		term, err := r.resolveValue(ctx, group, triple)
		if err != nil {
			return err
		}

		if err := r.values.AssignValue(descs, taxonomy, term); err != nil {
			r.log.Warn("variants: cannot assign %s=%s on %s: %v", taxonomy, term.Slug, base.ID, err)
			continue
		}
		if err := r.store.RelateTerm(base.ID, term.ID); err != nil {
			return err
		}

		selection[taxonomy] = term.Slug
	}

	// Batched persistence: one write for the base, one pass for the
	// variation's selection.
	if err := r.products.SaveDescriptors(base.ID, descs); err != nil {
		return err
	}
	if err := r.store.UpdatePost(base); err != nil {
		return err
	}

	// The submitted list replaces the variation's selection wholesale:
	// rows for groups no longer in it are cleared, not left to leak into
	// later reads and checksums.
	existing, err := r.store.PostMetaByPrefix(variationID, models.MetaAttributeSelectionPrefix)
	if err != nil {
		return err
	}
	for key := range existing {
		taxonomy := strings.TrimPrefix(key, models.MetaAttributeSelectionPrefix)
		if _, ok := selection[taxonomy]; !ok {
			if err := r.store.DeletePostMeta(variationID, key); err != nil {
				return err
			}
		}
	}
	for taxonomy, slug := range selection {
		key := models.MetaAttributeSelectionPrefix + taxonomy
		if err := r.store.SetPostMeta(variationID, key, slug); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) resolveGroup(ctx *reconcileContext, triple *Triple) (*models.AttributeTaxonomy, error) {
	key := attributes.Slugify(triple.Code)
	if group, ok := ctx.groups[key]; ok {
		return group, nil
	}

	group, err := r.groups.GroupByCode(triple.Code)
	if err != nil {
		return nil, err
	}
	if group == nil {
		names := triple.Names
		if len(names) == 0 {
			names = map[string]string{r.ml.DefaultLocale(): triple.Code}
		}
		group, err = r.groups.AddGroup(triple.Code, names)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute group %q", triple.Code)
		}
	} else if len(triple.Names) > 0 {
		// New names pushed for an existing group: rename, best effort.
		if err := r.groups.UpdateGroup(group, triple.Names); err != nil {
			r.log.Warn("variants: group %q rename failed: %v", triple.Code, err)
		}
	}

	ctx.groups[key] = group
	return group, nil
}

func (r *Reconciler) resolveValue(ctx *reconcileContext, group *models.AttributeTaxonomy, triple *Triple) (*models.Term, error) {
	defName := triple.Values[r.ml.DefaultLocale()]
	taxonomy := group.Taxonomy()
	key := taxonomy + "\x00" + defName
	if term, ok := ctx.terms[key]; ok {
		return term, nil
	}

	term, err := r.values.ValueByCode(taxonomy, defName)
	if err != nil {
		return nil, err
	}
	if term == nil {
		term, err = r.values.ValueByName(taxonomy, defName)
		if err != nil {
			return nil, err
		}
	}
	if term == nil {
		term, err = r.values.AddValue(group, triple.Values)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute value %q", defName)
		}
	}

	ctx.terms[key] = term
	return term, nil
}
