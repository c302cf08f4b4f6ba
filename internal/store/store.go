// Package store is the connector's view of the underlying shop
// database: attribute taxonomies, terms, posts and their meta, and
// customers. Lookups that find nothing return nil with a nil error;
// rejected writes return a wrapped error carrying the backend message.
package store

import (
	"errors"

	"woosync/internal/models"
)

// ErrDuplicate is wrapped into rejections caused by slug or code
// collisions so callers can tell them from transport failures.
var ErrDuplicate = errors.New("duplicate")

type Store interface {
	// Attribute taxonomies (attribute groups).
	AttributeTaxonomies() ([]models.AttributeTaxonomy, error)
	AttributeTaxonomyByName(name string) (*models.AttributeTaxonomy, error)
	CreateAttributeTaxonomy(t *models.AttributeTaxonomy) error
	UpdateAttributeTaxonomy(t *models.AttributeTaxonomy) error
	// DeleteAttributeTaxonomy exists for test harness cleanup only;
	// the sync flow never removes groups.
	DeleteAttributeTaxonomy(id string) error

	// Terms.
	TermByID(id string) (*models.Term, error)
	TermBySlug(taxonomy, slug string) (*models.Term, error)
	TermsByTaxonomy(taxonomy string) ([]models.Term, error)
	CreateTerm(t *models.Term) error
	RelateTerm(postID, termID string) error

	// Posts.
	PostByID(id string) (*models.Post, error)
	PostsByType(postType string, offset, limit int) ([]models.Post, int64, error)
	// SearchPostsByTitle is a substring pre-filter; callers decide
	// the actual match condition.
	SearchPostsByTitle(postType, search string) ([]models.Post, error)
	CreatePost(p *models.Post) error
	UpdatePost(p *models.Post) error
	DeletePost(id string) error
	ChildIDs(parentID string) ([]string, error)

	// Post meta. Absent keys read as "".
	PostMeta(postID, key string) (string, error)
	PostMetaByPrefix(postID, prefix string) (map[string]string, error)
	SetPostMeta(postID, key, value string) error
	DeletePostMeta(postID, key string) error

	// Customers.
	UserByID(id string) (*models.User, error)
	Users(offset, limit int) ([]models.User, int64, error)
	CreateUser(u *models.User) error
	UpdateUser(u *models.User) error
	DeleteUser(id string) error
}
