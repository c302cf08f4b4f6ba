package splash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/variants"
	"woosync/internal/store"
)

func newProductObject(t *testing.T) (*ProductObject, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	ml, err := multilang.New(multilang.ModeArray, "en_US", []string{"en_US", "fr_FR"})
	require.NoError(t, err)
	log := logger.New("error")
	svc := variants.NewService(st, ml, log, nil)
	rec := variants.NewReconciler(st, ml, log, svc)
	return NewProductObject(st, ml, log, svc, rec, nil), st
}

func TestProductSetCreatesSimpleProduct(t *testing.T) {
	obj, st := newProductObject(t)

	id, err := obj.Set("", map[string]interface{}{
		"title": "Mug",
		"sku":   "MUG-1",
		"price": 12.5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	price, err := st.PostMeta(id, models.MetaPrice)
	require.NoError(t, err)
	assert.Equal(t, "12.5", price)

	row, err := obj.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "simple", row["kind"])
	assert.Equal(t, "MUG-1", row["sku"])
	assert.Equal(t, map[string]string{"en_US": "Mug"}, row["title"])
	assert.NotEmpty(t, row["checksum"])
}

func TestProductSetCreatesVariantWithAttributes(t *testing.T) {
	obj, _ := newProductObject(t)

	id, err := obj.Set("", map[string]interface{}{
		"title":      map[string]interface{}{"en_US": "Shirt Red", "fr_FR": "Chemise rouge"},
		"base_title": "Shirt",
		"sku":        "SH-001",
		"attributes": []interface{}{
			map[string]interface{}{
				"code":  "color",
				"name":  map[string]interface{}{"en_US": "Color", "fr_FR": "Couleur"},
				"value": map[string]interface{}{"en_US": "Red", "fr_FR": "Rouge"},
			},
		},
	})
	require.NoError(t, err)

	row, err := obj.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "variant", row["kind"])
	assert.Equal(t, map[string]string{"pa_color": "red"}, row["attributes"])
}

func TestProductSetUpdatesTitleAndPrice(t *testing.T) {
	obj, st := newProductObject(t)

	id, err := obj.Set("", map[string]interface{}{"title": "Mug"})
	require.NoError(t, err)

	updated, err := obj.Set(id, map[string]interface{}{"title": "Big Mug", "price": "15.00"})
	require.NoError(t, err)
	assert.Equal(t, id, updated)

	row, err := obj.Get(id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"en_US": "Big Mug"}, row["title"])

	price, err := st.PostMeta(id, models.MetaPrice)
	require.NoError(t, err)
	assert.Equal(t, "15", price)
}

func TestProductSetDropsMalformedAttributeEntries(t *testing.T) {
	obj, _ := newProductObject(t)

	id, err := obj.Set("", map[string]interface{}{
		"title":      "Shirt Red",
		"base_title": "Shirt",
		"attributes": []interface{}{
			"not-a-triple",
			map[string]interface{}{"code": "color", "value": "Red"},
		},
	})
	require.NoError(t, err)

	row, err := obj.Get(id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa_color": "red"}, row["attributes"])
}

func TestProductGetMissing(t *testing.T) {
	obj, _ := newProductObject(t)

	_, err := obj.Get("nope")
	assert.ErrorIs(t, err, variants.ErrNotFound)
}

func TestProductListPaginates(t *testing.T) {
	obj, _ := newProductObject(t)

	for _, title := range []string{"Mug", "Plate", "Bowl"} {
		_, err := obj.Set("", map[string]interface{}{"title": title})
		require.NoError(t, err)
	}

	rows, total, err := obj.List(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)
}

func TestProductDelete(t *testing.T) {
	obj, _ := newProductObject(t)

	id, err := obj.Set("", map[string]interface{}{"title": "Mug"})
	require.NoError(t, err)
	require.NoError(t, obj.Delete(id))

	_, err = obj.Get(id)
	assert.ErrorIs(t, err, variants.ErrNotFound)
}
