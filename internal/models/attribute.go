package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxonomyPrefix namespaces product attribute taxonomies in the store,
// mirroring WooCommerce's "pa_" marker.
const TaxonomyPrefix = "pa_"

// AttributeTaxonomy is an attribute group: one axis of product variation
// such as color or size. Name is the machine code (no prefix); Label is
// the composed multilingual display name.
type AttributeTaxonomy struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Label     string    `json:"label" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Taxonomy returns the prefixed taxonomy name terms are filed under.
func (a *AttributeTaxonomy) Taxonomy() string {
	return TaxonomyPrefix + a.Name
}

// AttributeDescriptor is a product-level attribute declaration: which
// group a base product exposes and which term slugs its variations may
// select. Stored as JSON in the product's meta.
type AttributeDescriptor struct {
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
}

// HasOption reports whether slug is already an allowed option.
func (d *AttributeDescriptor) HasOption(slug string) bool {
	for _, o := range d.Options {
		if o == slug {
			return true
		}
	}
	return false
}

func (a *AttributeTaxonomy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
