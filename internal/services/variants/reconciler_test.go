package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/store"
)

func newTestReconciler(t *testing.T) (*Reconciler, *Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	ml, err := multilang.New(multilang.ModeArray, "en_US", []string{"en_US", "fr_FR"})
	require.NoError(t, err)
	log := logger.New("error")
	svc := NewService(st, ml, log, nil)
	return NewReconciler(st, ml, log, svc), svc, st
}

func newVariation(t *testing.T, svc *Service) (variationID, baseID string) {
	t.Helper()
	variation, err := svc.Create(CreateInput{
		BaseTitle:  "Shirt",
		Attributes: []Triple{{Code: "pending"}},
	})
	require.NoError(t, err)
	return variation.ID, *variation.ParentID
}

func TestReconcileCreatesGroupValueAndSelection(t *testing.T) {
	rec, svc, st := newTestReconciler(t)
	variationID, baseID := newVariation(t, svc)

	err := rec.Reconcile(variationID, []Triple{{
		Code:   "color",
		Names:  map[string]string{"en_US": "Color", "fr_FR": "Couleur"},
		Values: map[string]string{"en_US": "Red", "fr_FR": "Rouge"},
	}})
	require.NoError(t, err)

	group, err := st.AttributeTaxonomyByName("color")
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "pa_color", group.Taxonomy())

	term, err := st.TermBySlug("pa_color", "red")
	require.NoError(t, err)
	require.NotNil(t, term)

	descs, err := svc.Descriptors(baseID)
	require.NoError(t, err)
	require.Contains(t, descs, "pa_color")
	assert.True(t, descs["pa_color"].Variation)
	assert.True(t, descs["pa_color"].HasOption("red"))

	selection, err := svc.Selection(variationID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_color": "red"}, selection)
}

func TestReconcileReusesExistingGroupAndValue(t *testing.T) {
	rec, svc, st := newTestReconciler(t)

	firstID, baseID := newVariation(t, svc)
	triple := Triple{
		Code:   "color",
		Names:  map[string]string{"en_US": "Color"},
		Values: map[string]string{"en_US": "Red"},
	}
	require.NoError(t, rec.Reconcile(firstID, []Triple{triple}))

	second, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{triple}})
	require.NoError(t, err)
	require.NoError(t, rec.Reconcile(second.ID, []Triple{triple}))

	groups, err := st.AttributeTaxonomies()
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	terms, err := st.TermsByTaxonomy("pa_color")
	require.NoError(t, err)
	assert.Len(t, terms, 1)

	descs, err := svc.Descriptors(baseID)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, descs["pa_color"].Options)
}

func TestReconcileMultiWordGroupConvergesAcrossPasses(t *testing.T) {
	rec, svc, st := newTestReconciler(t)
	variationID, _ := newVariation(t, svc)

	triple := Triple{
		Code:   "Frame Size",
		Names:  map[string]string{"en_US": "Frame Size"},
		Values: map[string]string{"en_US": "54cm"},
	}
	require.NoError(t, rec.Reconcile(variationID, []Triple{triple}))
	// A second sync pass of the same code must resolve the stored group
	// instead of re-creating it and tripping the duplicate rejection.
	require.NoError(t, rec.Reconcile(variationID, []Triple{triple}))

	groups, err := st.AttributeTaxonomies()
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	selection, err := svc.Selection(variationID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_frame-size": "54cm"}, selection)
}

func TestReconcileRepeatedTripleIsIdempotent(t *testing.T) {
	rec, svc, st := newTestReconciler(t)
	variationID, baseID := newVariation(t, svc)

	triple := Triple{Code: "color", Values: map[string]string{"en_US": "Red"}}
	require.NoError(t, rec.Reconcile(variationID, []Triple{triple, triple}))
	require.NoError(t, rec.Reconcile(variationID, []Triple{triple}))

	terms, err := st.TermsByTaxonomy("pa_color")
	require.NoError(t, err)
	assert.Len(t, terms, 1)

	descs, err := svc.Descriptors(baseID)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, descs["pa_color"].Options)
}

func TestReconcileReplacesSelectionWholesale(t *testing.T) {
	rec, svc, _ := newTestReconciler(t)
	variationID, _ := newVariation(t, svc)

	require.NoError(t, rec.Reconcile(variationID, []Triple{
		{Code: "color", Values: map[string]string{"en_US": "Red"}},
	}))
	require.NoError(t, rec.Reconcile(variationID, []Triple{
		{Code: "size", Values: map[string]string{"en_US": "XL"}},
	}))

	// The second submission carried no color, so the old color row must
	// not survive into the selection.
	selection, err := svc.Selection(variationID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_size": "xl"}, selection)

	checksum, debug, err := svc.ChecksumFor(variationID)
	require.NoError(t, err)
	assert.NotEmpty(t, checksum)
	assert.NotContains(t, debug, "red")
}

func TestReconcileSkipsInvalidTriples(t *testing.T) {
	rec, svc, _ := newTestReconciler(t)
	variationID, _ := newVariation(t, svc)

	err := rec.Reconcile(variationID, []Triple{
		{Code: "", Values: map[string]string{"en_US": "Red"}},
		{Code: "size", Values: map[string]string{"fr_FR": "Grand"}},
		{Code: "color", Values: map[string]string{"en_US": "Red"}},
	})
	require.NoError(t, err)

	selection, err := svc.Selection(variationID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_color": "red"}, selection)
}

func TestReconcileValueMatchedByName(t *testing.T) {
	rec, svc, st := newTestReconciler(t)
	variationID, _ := newVariation(t, svc)

	// Seed a term whose slug does not derive from the submitted name,
	// so only the name lookup can find it.
	require.NoError(t, st.CreateAttributeTaxonomy(&models.AttributeTaxonomy{Name: "color", Label: "Color"}))
	require.NoError(t, st.CreateTerm(&models.Term{Taxonomy: "pa_color", Name: "Red", Slug: "crimson"}))

	err := rec.Reconcile(variationID, []Triple{{
		Code:   "color",
		Values: map[string]string{"en_US": "Red"},
	}})
	require.NoError(t, err)

	terms, err := st.TermsByTaxonomy("pa_color")
	require.NoError(t, err)
	require.Len(t, terms, 1)

	selection, err := svc.Selection(variationID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_color": "crimson"}, selection)
}

func TestReconcileRejectsNonVariation(t *testing.T) {
	rec, svc, _ := newTestReconciler(t)

	simple, err := svc.Create(CreateInput{Titles: map[string]string{"en_US": "Mug"}})
	require.NoError(t, err)

	err = rec.Reconcile(simple.ID, []Triple{{Code: "color", Values: map[string]string{"en_US": "Red"}}})
	assert.Error(t, err)
}

func TestReconcileRejectsMissingVariation(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	err := rec.Reconcile("nope", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
