package attributes

import (
	"strings"

	"github.com/pkg/errors"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/store"
)

// ValueResolver maps attribute values to taxonomy terms within a group.
type ValueResolver struct {
	store store.Store
	ml    multilang.Translator
	log   *logger.Logger
}

func NewValueResolver(st store.Store, ml multilang.Translator, log *logger.Logger) *ValueResolver {
	return &ValueResolver{store: st, ml: ml, log: log}
}

// ValueByCode looks a term up by its slug. Cheap and exact; used when
// the remote side sends machine codes.
func (r *ValueResolver) ValueByCode(taxonomy, code string) (*models.Term, error) {
	if taxonomy == "" || strings.TrimSpace(code) == "" {
		return nil, errors.New("taxonomy and value code are required")
	}
	return r.store.TermBySlug(taxonomy, Slugify(code))
}

// ValueByName scans the group's terms comparing decoded default-locale
// names; used when the remote side sends display strings.
func (r *ValueResolver) ValueByName(taxonomy, value string) (*models.Term, error) {
	if taxonomy == "" || strings.TrimSpace(value) == "" {
		return nil, errors.New("taxonomy and value are required")
	}

	terms, err := r.store.TermsByTaxonomy(taxonomy)
	if err != nil {
		return nil, err
	}
	for i := range terms {
		if r.ml.Decode(terms[i].Name, r.ml.DefaultLocale()) == value {
			return &terms[i], nil
		}
	}
	return nil, nil
}

// AddValue creates a term for the given locale-keyed names, registering
// the group's taxonomy first if the store does not know it yet. The
// default-locale name is mandatory; it keys uniqueness and the slug.
func (r *ValueResolver) AddValue(group *models.AttributeTaxonomy, names map[string]string) (*models.Term, error) {
	defName := names[r.ml.DefaultLocale()]
	if defName == "" {
		r.log.Error("attributes: cannot create value in %q without a default locale name", group.Name)
		return nil, errors.New("attribute value name is empty")
	}

	// Make sure the taxonomy is registered against the group's label.
	existing, err := r.store.AttributeTaxonomyByName(group.Name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := r.store.CreateAttributeTaxonomy(group); err != nil {
			r.log.Error("attributes: unable to register taxonomy %q: %v", group.Taxonomy(), err)
			return nil, err
		}
	}

	term := &models.Term{
		Taxonomy: group.Taxonomy(),
		Name:     r.ml.Encode(names),
		Slug:     Slugify(defName),
	}
	if err := r.store.CreateTerm(term); err != nil {
		r.log.Error("attributes: unable to create value %q in %s: %v", defName, group.Taxonomy(), err)
		return nil, err
	}
	return term, nil
}

// AssignValue registers term as an allowed option on the owning
// product's attribute descriptor for taxonomy. The descriptor must
// already exist (group assignment happens at the base product level);
// re-assigning an allowed value is a no-op. The caller persists the
// descriptor set.
func (r *ValueResolver) AssignValue(descriptors map[string]*models.AttributeDescriptor, taxonomy string, term *models.Term) error {
	desc, ok := descriptors[taxonomy]
	if !ok {
		return errors.Errorf("attribute %s is not assigned to the product", taxonomy)
	}
	if desc.HasOption(term.Slug) {
		return nil
	}
	desc.Options = append(desc.Options, term.Slug)
	return nil
}
