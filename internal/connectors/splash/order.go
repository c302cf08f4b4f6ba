package splash

import (
	"github.com/shopspring/decimal"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/services/variants"
	"woosync/internal/store"
)

// OrderObject exposes shop orders to the protocol. Orders flow outbound
// only; the remote side reads them for invoicing and never writes them
// back, so Set and Delete are rejected.
type OrderObject struct {
	store store.Store
	log   *logger.Logger
}

func NewOrderObject(st store.Store, log *logger.Logger) *OrderObject {
	return &OrderObject{store: st, log: log}
}

func (o *OrderObject) Type() string { return "Order" }

func (o *OrderObject) Fields() []Field {
	return []Field{
		{ID: "reference", Type: TypeVarchar, Name: "Reference", ReadOnly: true},
		{ID: "status", Type: TypeVarchar, Name: "Status", ReadOnly: true},
		{ID: "total", Type: TypePrice, Name: "Total", ReadOnly: true},
		{ID: "customer", Type: TypeVarchar, Name: "Customer", ReadOnly: true},
		{ID: "date", Type: TypeDate, Name: "Date", ReadOnly: true},
	}
}

func (o *OrderObject) List(offset, limit int) ([]map[string]interface{}, int64, error) {
	posts, total, err := o.store.PostsByType(models.PostTypeOrder, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]map[string]interface{}, 0, len(posts))
	for i := range posts {
		row, err := o.row(&posts[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, nil
}

func (o *OrderObject) Get(id string) (map[string]interface{}, error) {
	post, err := o.store.PostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Type != models.PostTypeOrder {
		return nil, variants.ErrNotFound
	}
	return o.row(post)
}

func (o *OrderObject) Set(id string, data map[string]interface{}) (string, error) {
	return "", variants.ErrNotFound
}

func (o *OrderObject) Delete(id string) error {
	return variants.ErrNotFound
}

func (o *OrderObject) row(post *models.Post) (map[string]interface{}, error) {
	rawTotal, err := o.store.PostMeta(post.ID, models.MetaOrderTotal)
	if err != nil {
		return nil, err
	}
	customer, err := o.store.PostMeta(post.ID, models.MetaCustomerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	if rawTotal != "" {
		if d, err := decimal.NewFromString(rawTotal); err == nil {
			total = d
		} else {
			o.log.Warn("splash: order %s has unparsable total %q", post.ID, rawTotal)
		}
	}

	return map[string]interface{}{
		"id":        post.ID,
		"reference": post.Title,
		"status":    post.Status,
		"total":     total,
		"customer":  customer,
		"date":      post.CreatedAt,
	}, nil
}
