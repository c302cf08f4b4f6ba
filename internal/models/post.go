package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ParentID  *string   `json:"parent_id" gorm:"type:uuid;index"`
	Type      string    `json:"type" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"default:publish"`
	Title     string    `json:"title" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"not null"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostMeta struct {
	ID     string `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PostID string `json:"post_id" gorm:"type:uuid;not null;index:idx_post_meta_lookup"`
	Key    string `json:"key" gorm:"column:meta_key;not null;index:idx_post_meta_lookup"`
	Value  string `json:"value" gorm:"column:meta_value;type:text"`
}

// Post types understood by the connector.
const (
	PostTypeProduct   = "product"
	PostTypeVariation = "product_variation"
	PostTypeOrder     = "shop_order"
	PostTypePost      = "post"
	PostTypePage      = "page"
)

const (
	PostStatusPublish = "publish"
	PostStatusDraft   = "draft"
	PostStatusTrash   = "trash"
)

// Meta keys used by the product catalog.
const (
	MetaSKU          = "_sku"
	MetaPrice        = "_price"
	MetaProductType  = "_product_type"
	MetaProductAttrs = "_product_attributes"
	MetaOrderTotal   = "_order_total"
	MetaCustomerID   = "_customer_id"

	// Per-group selection on a variation, suffixed with the taxonomy name.
	MetaAttributeSelectionPrefix = "attribute_"
)

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (m *PostMeta) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
