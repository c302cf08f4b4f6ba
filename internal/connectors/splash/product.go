package splash

import (
	"github.com/shopspring/decimal"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/variants"
	"woosync/internal/store"
)

// ProductObject maps the protocol's Product onto the catalog: plain
// products directly, variant products through the base/variation
// lifecycle and the attribute reconciler.
type ProductObject struct {
	store    store.Store
	ml       multilang.Translator
	log      *logger.Logger
	products *variants.Service
	rec      *variants.Reconciler
	notifier variants.Notifier
}

func NewProductObject(st store.Store, ml multilang.Translator, log *logger.Logger,
	products *variants.Service, rec *variants.Reconciler, n variants.Notifier) *ProductObject {
	if n == nil {
		n = variants.NopNotifier{}
	}
	return &ProductObject{store: st, ml: ml, log: log, products: products, rec: rec, notifier: n}
}

func (o *ProductObject) Type() string { return "Product" }

func (o *ProductObject) Fields() []Field {
	return []Field{
		{ID: "title", Type: TypeMVarchar, Name: "Title", Required: true},
		{ID: "base_title", Type: TypeVarchar, Name: "Base Title"},
		{ID: "sku", Type: TypeVarchar, Name: "SKU"},
		{ID: "price", Type: TypePrice, Name: "Price"},
		{ID: "attributes", Type: TypeList, Name: "Attributes"},
		{ID: "kind", Type: TypeVarchar, Name: "Kind", ReadOnly: true,
			Choices: []string{
				models.KindSimple.String(),
				models.KindVariant.String(),
				models.KindBaseWithChildren.String(),
			}},
		{ID: "checksum", Type: TypeVarchar, Name: "Checksum", ReadOnly: true},
	}
}

func (o *ProductObject) List(offset, limit int) ([]map[string]interface{}, int64, error) {
	posts, total, err := o.store.PostsByType(models.PostTypeProduct, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]map[string]interface{}, 0, len(posts))
	for i := range posts {
		row, err := o.Get(posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, nil
}

func (o *ProductObject) Get(id string) (map[string]interface{}, error) {
	post, err := o.store.PostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, variants.ErrNotFound
	}

	ref, err := o.products.Kind(post)
	if err != nil {
		return nil, err
	}
	sku, err := o.store.PostMeta(id, models.MetaSKU)
	if err != nil {
		return nil, err
	}
	price, err := o.store.PostMeta(id, models.MetaPrice)
	if err != nil {
		return nil, err
	}
	checksum, _, err := o.products.ChecksumFor(id)
	if err != nil {
		return nil, err
	}

	row := map[string]interface{}{
		"id":       post.ID,
		"title":    o.ml.DecodeAll(post.Title),
		"sku":      sku,
		"kind":     ref.Kind.String(),
		"checksum": checksum,
	}
	if price != "" {
		if d, err := decimal.NewFromString(price); err == nil {
			row["price"] = d
		}
	}
	if ref.Kind == models.KindVariant {
		selection, err := o.products.Selection(id)
		if err != nil {
			return nil, err
		}
		row["attributes"] = selection
	}
	return row, nil
}

func (o *ProductObject) Set(id string, data map[string]interface{}) (string, error) {
	triples := o.parseTriples(data["attributes"])

	if id == "" {
		input := variants.CreateInput{
			Titles:     liftLocaleMap(data["title"], o.ml.DefaultLocale()),
			BaseTitle:  asString(data["base_title"]),
			SKU:        asString(data["sku"]),
			Attributes: triples,
		}
		if raw := asString(data["price"]); raw != "" {
			if d, err := decimal.NewFromString(raw); err == nil {
				input.Price = &d
			}
		}

		post, err := o.products.Create(input)
		if err != nil {
			return "", err
		}
		if len(triples) > 0 {
			if err := o.rec.Reconcile(post.ID, triples); err != nil {
				return "", err
			}
		}
		return post.ID, nil
	}

	post, err := o.store.PostByID(id)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", variants.ErrNotFound
	}

	if titles := liftLocaleMap(data["title"], o.ml.DefaultLocale()); len(titles) > 0 {
		post.Title = o.ml.Encode(titles)
		if err := o.store.UpdatePost(post); err != nil {
			return "", err
		}
	}
	if sku := asString(data["sku"]); sku != "" {
		if err := o.store.SetPostMeta(id, models.MetaSKU, sku); err != nil {
			return "", err
		}
	}
	if raw := asString(data["price"]); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			if err := o.store.SetPostMeta(id, models.MetaPrice, d.String()); err != nil {
				return "", err
			}
		}
	}
	if len(triples) > 0 {
		if err := o.rec.Reconcile(id, triples); err != nil {
			return "", err
		}
	}

	o.notifier.Notify(variants.ObjectProduct, id, variants.ActionUpdated)
	return id, nil
}

func (o *ProductObject) Delete(id string) error {
	return o.products.Delete(id)
}

// parseTriples decodes the wire attribute list. Entries that are not
// shaped like an attribute triple are dropped here; value-level
// validation happens in the reconciler.
func (o *ProductObject) parseTriples(raw interface{}) []variants.Triple {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	def := o.ml.DefaultLocale()

	out := make([]variants.Triple, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			o.log.Warn("splash: dropping malformed attribute entry %T", entry)
			continue
		}
		out = append(out, variants.Triple{
			Code:   asString(m["code"]),
			Names:  liftLocaleMap(m["name"], def),
			Values: liftLocaleMap(m["value"], def),
		})
	}
	return out
}
