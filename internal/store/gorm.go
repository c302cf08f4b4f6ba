package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"woosync/internal/models"
)

// Gorm is the production Store over the shop database schema created by
// internal/database.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func wrapCreate(err error, what string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique") ||
		errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrapf(ErrDuplicate, "%s: %v", what, err)
	}
	return errors.Wrap(err, what)
}

func (g *Gorm) AttributeTaxonomies() ([]models.AttributeTaxonomy, error) {
	var out []models.AttributeTaxonomy
	if err := g.db.Order("name").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list attribute taxonomies")
	}
	return out, nil
}

func (g *Gorm) AttributeTaxonomyByName(name string) (*models.AttributeTaxonomy, error) {
	var t models.AttributeTaxonomy
	err := g.db.First(&t, "name = ?", name).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetch attribute taxonomy")
	}
	return &t, nil
}

func (g *Gorm) CreateAttributeTaxonomy(t *models.AttributeTaxonomy) error {
	return wrapCreate(g.db.Create(t).Error, "create attribute taxonomy")
}

func (g *Gorm) UpdateAttributeTaxonomy(t *models.AttributeTaxonomy) error {
	return errors.Wrap(g.db.Save(t).Error, "update attribute taxonomy")
}

func (g *Gorm) DeleteAttributeTaxonomy(id string) error {
	return errors.Wrap(g.db.Delete(&models.AttributeTaxonomy{}, "id = ?", id).Error, "delete attribute taxonomy")
}

func (g *Gorm) TermByID(id string) (*models.Term, error) {
	var t models.Term
	err := g.db.First(&t, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetch term")
	}
	return &t, nil
}

func (g *Gorm) TermBySlug(taxonomy, slug string) (*models.Term, error) {
	var t models.Term
	err := g.db.First(&t, "taxonomy = ? AND slug = ?", taxonomy, slug).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetch term by slug")
	}
	return &t, nil
}

func (g *Gorm) TermsByTaxonomy(taxonomy string) ([]models.Term, error) {
	var out []models.Term
	if err := g.db.Where("taxonomy = ?", taxonomy).Order("slug").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list terms")
	}
	return out, nil
}

func (g *Gorm) CreateTerm(t *models.Term) error {
	return wrapCreate(g.db.Create(t).Error, "create term")
}

func (g *Gorm) RelateTerm(postID, termID string) error {
	var count int64
	g.db.Model(&models.TermRelationship{}).
		Where("post_id = ? AND term_id = ?", postID, termID).
		Count(&count)
	if count > 0 {
		return nil
	}
	rel := models.TermRelationship{PostID: postID, TermID: termID}
	return errors.Wrap(g.db.Create(&rel).Error, "relate term")
}

func (g *Gorm) PostByID(id string) (*models.Post, error) {
	var p models.Post
	err := g.db.First(&p, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetch post")
	}
	return &p, nil
}

func (g *Gorm) PostsByType(postType string, offset, limit int) ([]models.Post, int64, error) {
	query := g.db.Model(&models.Post{}).Where("type = ?", postType)

	var total int64
	query.Count(&total)

	var out []models.Post
	if err := query.Order("created_at").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list posts")
	}
	return out, total, nil
}

func (g *Gorm) SearchPostsByTitle(postType, search string) ([]models.Post, error) {
	var out []models.Post
	err := g.db.
		Where("type = ?", postType).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "search posts")
	}
	return out, nil
}

func (g *Gorm) CreatePost(p *models.Post) error {
	return wrapCreate(g.db.Create(p).Error, "create post")
}

func (g *Gorm) UpdatePost(p *models.Post) error {
	return errors.Wrap(g.db.Save(p).Error, "update post")
}

func (g *Gorm) DeletePost(id string) error {
	if err := g.db.Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "delete post")
	}
	g.db.Delete(&models.PostMeta{}, "post_id = ?", id)
	g.db.Delete(&models.TermRelationship{}, "post_id = ?", id)
	return nil
}

func (g *Gorm) ChildIDs(parentID string) ([]string, error) {
	var out []string
	err := g.db.Model(&models.Post{}).
		Where("parent_id = ?", parentID).
		Pluck("id", &out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list children")
	}
	return out, nil
}

func (g *Gorm) PostMeta(postID, key string) (string, error) {
	var m models.PostMeta
	err := g.db.First(&m, "post_id = ? AND meta_key = ?", postID, key).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "fetch post meta")
	}
	return m.Value, nil
}

func (g *Gorm) PostMetaByPrefix(postID, prefix string) (map[string]string, error) {
	var rows []models.PostMeta
	err := g.db.
		Where("post_id = ?", postID).
		Where("meta_key LIKE ?", prefix+"%").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list post meta")
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.Key] = m.Value
	}
	return out, nil
}

func (g *Gorm) SetPostMeta(postID, key, value string) error {
	var m models.PostMeta
	err := g.db.First(&m, "post_id = ? AND meta_key = ?", postID, key).Error
	if err == gorm.ErrRecordNotFound {
		m = models.PostMeta{PostID: postID, Key: key, Value: value}
		return errors.Wrap(g.db.Create(&m).Error, "create post meta")
	}
	if err != nil {
		return errors.Wrap(err, "fetch post meta")
	}
	m.Value = value
	return errors.Wrap(g.db.Save(&m).Error, "update post meta")
}

func (g *Gorm) DeletePostMeta(postID, key string) error {
	return errors.Wrap(
		g.db.Delete(&models.PostMeta{}, "post_id = ? AND meta_key = ?", postID, key).Error,
		"delete post meta")
}

func (g *Gorm) UserByID(id string) (*models.User, error) {
	var u models.User
	err := g.db.First(&u, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetch user")
	}
	return &u, nil
}

func (g *Gorm) Users(offset, limit int) ([]models.User, int64, error) {
	var total int64
	g.db.Model(&models.User{}).Count(&total)

	var out []models.User
	if err := g.db.Order("created_at").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return out, total, nil
}

func (g *Gorm) CreateUser(u *models.User) error {
	return wrapCreate(g.db.Create(u).Error, "create user")
}

func (g *Gorm) UpdateUser(u *models.User) error {
	return errors.Wrap(g.db.Save(u).Error, "update user")
}

func (g *Gorm) DeleteUser(id string) error {
	return errors.Wrap(g.db.Delete(&models.User{}, "id = ?", id).Error, "delete user")
}
