package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"woosync/internal/models"
)

// Memory is the in-process Store used by tests and the simulated
// multilang mode. Request handling is single-threaded, so there is no
// locking here.
type Memory struct {
	taxonomies map[string]*models.AttributeTaxonomy
	terms      map[string]*models.Term
	relations  map[string]map[string]bool // postID -> termID set
	posts      map[string]*models.Post
	meta       map[string]map[string]string // postID -> key -> value
	users      map[string]*models.User
}

func NewMemory() *Memory {
	return &Memory{
		taxonomies: make(map[string]*models.AttributeTaxonomy),
		terms:      make(map[string]*models.Term),
		relations:  make(map[string]map[string]bool),
		posts:      make(map[string]*models.Post),
		meta:       make(map[string]map[string]string),
		users:      make(map[string]*models.User),
	}
}

func (m *Memory) AttributeTaxonomies() ([]models.AttributeTaxonomy, error) {
	out := make([]models.AttributeTaxonomy, 0, len(m.taxonomies))
	for _, t := range m.taxonomies {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) AttributeTaxonomyByName(name string) (*models.AttributeTaxonomy, error) {
	for _, t := range m.taxonomies {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateAttributeTaxonomy(t *models.AttributeTaxonomy) error {
	if t.Name == "" {
		return errors.New("attribute taxonomy name is empty")
	}
	for _, existing := range m.taxonomies {
		if existing.Name == t.Name {
			return errors.Wrapf(ErrDuplicate, "attribute taxonomy %q already exists", t.Name)
		}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	m.taxonomies[t.ID] = &cp
	return nil
}

func (m *Memory) UpdateAttributeTaxonomy(t *models.AttributeTaxonomy) error {
	if _, ok := m.taxonomies[t.ID]; !ok {
		return errors.Errorf("attribute taxonomy %s not found", t.ID)
	}
	cp := *t
	m.taxonomies[t.ID] = &cp
	return nil
}

func (m *Memory) DeleteAttributeTaxonomy(id string) error {
	delete(m.taxonomies, id)
	return nil
}

func (m *Memory) TermByID(id string) (*models.Term, error) {
	if t, ok := m.terms[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) TermBySlug(taxonomy, slug string) (*models.Term, error) {
	for _, t := range m.terms {
		if t.Taxonomy == taxonomy && t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) TermsByTaxonomy(taxonomy string) ([]models.Term, error) {
	var out []models.Term
	for _, t := range m.terms {
		if t.Taxonomy == taxonomy {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (m *Memory) CreateTerm(t *models.Term) error {
	if t.Taxonomy == "" || t.Slug == "" {
		return errors.New("term taxonomy and slug are required")
	}
	for _, existing := range m.terms {
		if existing.Taxonomy == t.Taxonomy && existing.Slug == t.Slug {
			return errors.Wrapf(ErrDuplicate, "term %q already exists in %s", t.Slug, t.Taxonomy)
		}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	m.terms[t.ID] = &cp
	return nil
}

func (m *Memory) RelateTerm(postID, termID string) error {
	if m.relations[postID] == nil {
		m.relations[postID] = make(map[string]bool)
	}
	m.relations[postID][termID] = true
	return nil
}

func (m *Memory) PostByID(id string) (*models.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) PostsByType(postType string, offset, limit int) ([]models.Post, int64, error) {
	var all []models.Post
	for _, p := range m.posts {
		if p.Type == postType {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (m *Memory) SearchPostsByTitle(postType, search string) ([]models.Post, error) {
	needle := strings.ToLower(search)
	var out []models.Post
	for _, p := range m.posts {
		if p.Type == postType && strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreatePost(p *models.Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *Memory) UpdatePost(p *models.Post) error {
	if _, ok := m.posts[p.ID]; !ok {
		return errors.Errorf("post %s not found", p.ID)
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *Memory) DeletePost(id string) error {
	delete(m.posts, id)
	delete(m.meta, id)
	delete(m.relations, id)
	return nil
}

func (m *Memory) ChildIDs(parentID string) ([]string, error) {
	var out []string
	for _, p := range m.posts {
		if p.ParentID != nil && *p.ParentID == parentID {
			out = append(out, p.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) PostMeta(postID, key string) (string, error) {
	return m.meta[postID][key], nil
}

func (m *Memory) PostMetaByPrefix(postID, prefix string) (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range m.meta[postID] {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

func (m *Memory) SetPostMeta(postID, key, value string) error {
	if m.meta[postID] == nil {
		m.meta[postID] = make(map[string]string)
	}
	m.meta[postID][key] = value
	return nil
}

func (m *Memory) DeletePostMeta(postID, key string) error {
	delete(m.meta[postID], key)
	return nil
}

func (m *Memory) UserByID(id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) Users(offset, limit int) ([]models.User, int64, error) {
	var all []models.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (m *Memory) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errors.Wrapf(ErrDuplicate, "user %q already exists", u.Email)
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) UpdateUser(u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return errors.Errorf("user %s not found", u.ID)
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) DeleteUser(id string) error {
	delete(m.users, id)
	return nil
}
