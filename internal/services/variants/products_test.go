package variants

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/store"
)

// recordingNotifier mirrors the kafka notifier's suppression semantics
// and keeps the events for assertions.
type recordingNotifier struct {
	events     []string
	suppressed int
}

func (r *recordingNotifier) Notify(object, id, action string) {
	if r.suppressed > 0 {
		return
	}
	r.events = append(r.events, fmt.Sprintf("%s:%s:%s", object, id, action))
}

func (r *recordingNotifier) WithSuppressed(fn func() error) error {
	r.suppressed++
	defer func() { r.suppressed-- }()
	return fn()
}

func newTestService(t *testing.T) (*Service, *store.Memory, *recordingNotifier) {
	t.Helper()
	st := store.NewMemory()
	ml, err := multilang.New(multilang.ModeArray, "en_US", []string{"en_US", "fr_FR"})
	require.NoError(t, err)
	rec := &recordingNotifier{}
	return NewService(st, ml, logger.New("error"), rec), st, rec
}

func colorTriple(value string) Triple {
	return Triple{
		Code:   "color",
		Names:  map[string]string{"en_US": "Color"},
		Values: map[string]string{"en_US": value},
	}
}

func TestCreateSimpleProduct(t *testing.T) {
	svc, st, rec := newTestService(t)

	price := decimal.NewFromFloat(19.90)
	post, err := svc.Create(CreateInput{
		Titles: map[string]string{"en_US": "Mug"},
		SKU:    "MUG-1",
		Price:  &price,
	})
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, models.PostTypeProduct, post.Type)

	kind, err := st.PostMeta(post.ID, models.MetaProductType)
	require.NoError(t, err)
	assert.Equal(t, "simple", kind)

	sku, err := st.PostMeta(post.ID, models.MetaSKU)
	require.NoError(t, err)
	assert.Equal(t, "MUG-1", sku)

	stored, err := st.PostMeta(post.ID, models.MetaPrice)
	require.NoError(t, err)
	assert.Equal(t, "19.9", stored)

	assert.Equal(t, []string{"product:" + post.ID + ":created"}, rec.events)
}

func TestCreateSimpleProductRequiresTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(CreateInput{})
	assert.Error(t, err)
}

func TestCreateVariantRequiresBaseTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(CreateInput{Attributes: []Triple{colorTriple("Red")}})
	assert.Error(t, err)
}

func TestCreateVariantBuildsBaseLazily(t *testing.T) {
	svc, st, _ := newTestService(t)

	variation, err := svc.Create(CreateInput{
		BaseTitle:  "Shirt",
		SKU:        "SH-001",
		Attributes: []Triple{colorTriple("Red")},
	})
	require.NoError(t, err)
	require.NotNil(t, variation)
	assert.Equal(t, models.PostTypeVariation, variation.Type)
	require.NotNil(t, variation.ParentID)

	base, err := st.PostByID(*variation.ParentID)
	require.NoError(t, err)
	require.NotNil(t, base)
	assert.Equal(t, models.PostTypeProduct, base.Type)
	assert.Equal(t, "Shirt", base.Title)

	kind, err := st.PostMeta(base.ID, models.MetaProductType)
	require.NoError(t, err)
	assert.Equal(t, "variable", kind)

	// The variation mirrors the base title; attributes come later.
	assert.Equal(t, "Shirt", variation.Title)
	assert.Equal(t, base.Slug, variation.Slug)
}

func TestCreateSecondVariantReusesBase(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Red")}})
	require.NoError(t, err)
	second, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Blue")}})
	require.NoError(t, err)

	assert.Equal(t, *first.ParentID, *second.ParentID)
}

func TestBaseCreationSuppressesItsOwnNotification(t *testing.T) {
	svc, _, rec := newTestService(t)

	variation, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Red")}})
	require.NoError(t, err)

	// One outbound event: the variation. The nested base save stays quiet.
	assert.Equal(t, []string{"product:" + variation.ID + ":created"}, rec.events)
}

func TestBaseProductByTitleMatchesExactly(t *testing.T) {
	svc, st, _ := newTestService(t)

	require.NoError(t, st.CreatePost(&models.Post{Type: models.PostTypeProduct, Title: "Shirt", Slug: "shirt"}))
	require.NoError(t, st.CreatePost(&models.Post{Type: models.PostTypeProduct, Title: "Shirt Deluxe", Slug: "shirt-deluxe"}))

	// Substring search would return both; only the exact title matches.
	found, err := svc.BaseProductByTitle("Shirt")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Shirt", found.Title)

	missing, err := svc.BaseProductByTitle("Shir")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteLastVariantCascadesToBase(t *testing.T) {
	svc, st, _ := newTestService(t)

	variation, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Red")}})
	require.NoError(t, err)
	baseID := *variation.ParentID

	require.NoError(t, svc.Delete(variation.ID))

	gone, err := st.PostByID(baseID)
	require.NoError(t, err)
	assert.Nil(t, gone, "base product must be removed with its last variation")
}

func TestDeleteNonLastVariantKeepsBase(t *testing.T) {
	svc, st, _ := newTestService(t)

	first, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Red")}})
	require.NoError(t, err)
	second, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Blue")}})
	require.NoError(t, err)
	baseID := *first.ParentID

	require.NoError(t, svc.Delete(first.ID))

	base, err := st.PostByID(baseID)
	require.NoError(t, err)
	assert.NotNil(t, base)

	stillThere, err := st.PostByID(second.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)
}

func TestDeleteMissingPost(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKindClassification(t *testing.T) {
	svc, st, _ := newTestService(t)

	variation, err := svc.Create(CreateInput{BaseTitle: "Shirt", Attributes: []Triple{colorTriple("Red")}})
	require.NoError(t, err)
	base, err := st.PostByID(*variation.ParentID)
	require.NoError(t, err)

	simple, err := svc.Create(CreateInput{Titles: map[string]string{"en_US": "Mug"}})
	require.NoError(t, err)

	ref, err := svc.Kind(variation)
	require.NoError(t, err)
	assert.Equal(t, models.KindVariant, ref.Kind)
	assert.Equal(t, base.ID, ref.ParentID)

	ref, err = svc.Kind(base)
	require.NoError(t, err)
	assert.Equal(t, models.KindBaseWithChildren, ref.Kind)
	assert.Equal(t, []string{variation.ID}, ref.ChildIDs)

	ref, err = svc.Kind(simple)
	require.NoError(t, err)
	assert.Equal(t, models.KindSimple, ref.Kind)
}
