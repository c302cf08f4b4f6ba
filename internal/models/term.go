package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Term is one selectable value inside a taxonomy. Name carries the
// composed multilingual display string; Slug is derived from the
// default-locale name and is unique within the taxonomy.
type Term struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Taxonomy  string    `json:"taxonomy" gorm:"not null;index;uniqueIndex:idx_terms_taxonomy_slug,priority:1"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex:idx_terms_taxonomy_slug,priority:2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TermRelationship links a post to a term it is allowed to use.
type TermRelationship struct {
	ID     string `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PostID string `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_term_rel,priority:1"`
	TermID string `json:"term_id" gorm:"type:uuid;not null;uniqueIndex:idx_term_rel,priority:2"`
}

func (t *Term) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (r *TermRelationship) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
