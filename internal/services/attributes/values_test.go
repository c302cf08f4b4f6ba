package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/store"
)

func newValueResolver(t *testing.T) (*ValueResolver, *GroupResolver, *store.Memory, multilang.Translator) {
	t.Helper()
	st := store.NewMemory()
	ml, err := multilang.New(multilang.ModeArray, "en_US", []string{"en_US", "fr_FR"})
	require.NoError(t, err)
	log := logger.New("error")
	return NewValueResolver(st, ml, log), NewGroupResolver(st, ml, log), st, ml
}

func TestAddValueAndLookupBySlug(t *testing.T) {
	values, groups, _, _ := newValueResolver(t)

	group, err := groups.AddGroup("color", map[string]string{"en_US": "Color"})
	require.NoError(t, err)

	term, err := values.AddValue(group, map[string]string{"en_US": "Red", "fr_FR": "Rouge"})
	require.NoError(t, err)
	require.NotNil(t, term)
	assert.Equal(t, "red", term.Slug)
	assert.Equal(t, "pa_color", term.Taxonomy)

	found, err := values.ValueByCode("pa_color", "red")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, term.ID, found.ID)
}

func TestValueByNameComparesDecodedDefaultLocale(t *testing.T) {
	values, groups, _, _ := newValueResolver(t)

	group, err := groups.AddGroup("color", map[string]string{"en_US": "Color"})
	require.NoError(t, err)
	term, err := values.AddValue(group, map[string]string{"en_US": "Navy Blue", "fr_FR": "Bleu marine"})
	require.NoError(t, err)

	found, err := values.ValueByName("pa_color", "Navy Blue")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, term.ID, found.ID)

	// The French name is not the lookup key.
	miss, err := values.ValueByName("pa_color", "Bleu marine")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestValueLookupsRequireInputs(t *testing.T) {
	values, _, _, _ := newValueResolver(t)

	_, err := values.ValueByCode("", "red")
	assert.Error(t, err)
	_, err = values.ValueByCode("pa_color", " ")
	assert.Error(t, err)
	_, err = values.ValueByName("pa_color", "")
	assert.Error(t, err)
}

func TestAddValueRequiresDefaultLocaleName(t *testing.T) {
	values, groups, _, _ := newValueResolver(t)

	group, err := groups.AddGroup("color", map[string]string{"en_US": "Color"})
	require.NoError(t, err)

	_, err = values.AddValue(group, map[string]string{"fr_FR": "Rouge"})
	assert.Error(t, err)
}

func TestAddValueRegistersMissingTaxonomy(t *testing.T) {
	values, _, st, _ := newValueResolver(t)

	// A group handle that was never persisted.
	group := &models.AttributeTaxonomy{Name: "material", Label: "Material"}
	term, err := values.AddValue(group, map[string]string{"en_US": "Cotton"})
	require.NoError(t, err)
	require.NotNil(t, term)

	registered, err := st.AttributeTaxonomyByName("material")
	require.NoError(t, err)
	assert.NotNil(t, registered)
}

func TestAddValueReportsDuplicateSlug(t *testing.T) {
	values, groups, _, _ := newValueResolver(t)

	group, err := groups.AddGroup("color", map[string]string{"en_US": "Color"})
	require.NoError(t, err)
	_, err = values.AddValue(group, map[string]string{"en_US": "Red"})
	require.NoError(t, err)

	_, err = values.AddValue(group, map[string]string{"en_US": "Red"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestAssignValueRequiresGroupOnProduct(t *testing.T) {
	values, _, _, _ := newValueResolver(t)

	descs := map[string]*models.AttributeDescriptor{}
	term := &models.Term{Taxonomy: "pa_color", Slug: "red"}

	assert.Error(t, values.AssignValue(descs, "pa_color", term))
}

func TestAssignValueIsIdempotent(t *testing.T) {
	values, _, _, _ := newValueResolver(t)

	descs := map[string]*models.AttributeDescriptor{
		"pa_color": {Name: "pa_color", Visible: true, Variation: true},
	}
	term := &models.Term{Taxonomy: "pa_color", Slug: "red"}

	require.NoError(t, values.AssignValue(descs, "pa_color", term))
	require.NoError(t, values.AssignValue(descs, "pa_color", term))

	assert.Equal(t, []string{"red"}, descs["pa_color"].Options)
}
