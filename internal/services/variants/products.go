// Package variants implements the product variant subsystem: base and
// variation product lifecycle, reconciliation of submitted attribute
// triples against the store's taxonomy-backed attributes, and the
// checksum identity fingerprint used for deduplication.
package variants

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/attributes"
	"woosync/internal/store"
)

var ErrNotFound = errors.New("not found")

const (
	productTypeSimple   = "simple"
	productTypeVariable = "variable"
)

// Service owns base/variation product CRUD.
type Service struct {
	store    store.Store
	ml       multilang.Translator
	log      *logger.Logger
	notifier Notifier
}

func NewService(st store.Store, ml multilang.Translator, log *logger.Logger, n Notifier) *Service {
	if n == nil {
		n = NopNotifier{}
	}
	return &Service{store: st, ml: ml, log: log, notifier: n}
}

// CreateInput is an inbound product write. An empty attribute list
// means a plain product; otherwise BaseTitle is required and the write
// produces a variation of that base.
type CreateInput struct {
	Titles     map[string]string
	BaseTitle  string
	SKU        string
	Price      *decimal.Decimal
	Attributes []Triple
}

// BaseProductByTitle locates an existing base product by exact title.
// The store's text search is only a pre-filter; the match condition is
// equality of the decoded default-locale title.
func (s *Service) BaseProductByTitle(title string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("base product title is empty")
	}

	candidates, err := s.store.SearchPostsByTitle(models.PostTypeProduct, title)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if s.ml.Decode(candidates[i].Title, s.ml.DefaultLocale()) == title {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// Create creates a plain product, or a variation with its base product
// created lazily when the first variation referencing it arrives.
// Outbound notifications are suppressed around the nested base-product
// save so only the variation itself is announced.
func (s *Service) Create(input CreateInput) (*models.Post, error) {
	if len(input.Attributes) == 0 {
		return s.createSimple(input)
	}

	if strings.TrimSpace(input.BaseTitle) == "" {
		return nil, errors.New("variant product requires a base title")
	}

	base, err := s.BaseProductByTitle(input.BaseTitle)
	if err != nil {
		return nil, err
	}
	if base == nil {
		err = s.notifier.WithSuppressed(func() error {
			base = &models.Post{
				Type:   models.PostTypeProduct,
				Status: models.PostStatusPublish,
				Title:  input.BaseTitle,
				Slug:   attributes.Slugify(input.BaseTitle),
			}
			if err := s.store.CreatePost(base); err != nil {
				return err
			}
			return s.store.SetPostMeta(base.ID, models.MetaProductType, productTypeVariable)
		})
		if err != nil {
			return nil, errors.Wrap(err, "create base product")
		}
	} else if err := s.store.SetPostMeta(base.ID, models.MetaProductType, productTypeVariable); err != nil {
		return nil, err
	}

	// The variation mirrors the base title and slug; attributes are
	// attached afterwards by the reconciler.
	variation := &models.Post{
		ParentID: &base.ID,
		Type:     models.PostTypeVariation,
		Status:   models.PostStatusPublish,
		Title:    input.BaseTitle,
		Slug:     attributes.Slugify(input.BaseTitle),
	}
	if err := s.store.CreatePost(variation); err != nil {
		return nil, errors.Wrap(err, "create variation")
	}
	if err := s.writeCommonMeta(variation.ID, input); err != nil {
		return nil, err
	}

	s.notifier.Notify(ObjectProduct, variation.ID, ActionCreated)
	return variation, nil
}

func (s *Service) createSimple(input CreateInput) (*models.Post, error) {
	title := s.ml.Encode(input.Titles)
	if title == "" {
		return nil, errors.New("product title is empty")
	}

	post := &models.Post{
		Type:   models.PostTypeProduct,
		Status: models.PostStatusPublish,
		Title:  title,
		Slug:   attributes.Slugify(input.Titles[s.ml.DefaultLocale()]),
	}
	if err := s.store.CreatePost(post); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	if err := s.store.SetPostMeta(post.ID, models.MetaProductType, productTypeSimple); err != nil {
		return nil, err
	}
	if err := s.writeCommonMeta(post.ID, input); err != nil {
		return nil, err
	}

	s.notifier.Notify(ObjectProduct, post.ID, ActionCreated)
	return post, nil
}

func (s *Service) writeCommonMeta(postID string, input CreateInput) error {
	if input.SKU != "" {
		if err := s.store.SetPostMeta(postID, models.MetaSKU, input.SKU); err != nil {
			return err
		}
	}
	if input.Price != nil {
		if err := s.store.SetPostMeta(postID, models.MetaPrice, input.Price.String()); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the post and cascades to its base product when the
// last variation goes: the parent delete re-enters this same path. A
// failing parent delete is reported but does not undo the child delete;
// there is no transactional rollback in this design.
func (s *Service) Delete(id string) error {
	post, err := s.store.PostByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return errors.Wrapf(ErrNotFound, "post %s", id)
	}

	if err := s.store.DeletePost(id); err != nil {
		return err
	}
	s.notifier.Notify(ObjectProduct, id, ActionDeleted)

	if post.ParentID != nil {
		children, err := s.store.ChildIDs(*post.ParentID)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			if err := s.Delete(*post.ParentID); err != nil {
				s.log.Error("variants: cascading base delete of %s failed: %v", *post.ParentID, err)
				return err
			}
		}
	}
	return nil
}

// Kind classifies a catalog post once so callers can match on the
// result instead of re-inspecting post types.
func (s *Service) Kind(post *models.Post) (*models.ProductRef, error) {
	ref := &models.ProductRef{Kind: models.KindSimple, Post: post}

	if post.Type == models.PostTypeVariation && post.ParentID != nil {
		ref.Kind = models.KindVariant
		ref.ParentID = *post.ParentID
		return ref, nil
	}

	children, err := s.store.ChildIDs(post.ID)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		ref.Kind = models.KindBaseWithChildren
		ref.ChildIDs = children
	}
	return ref, nil
}

// Descriptors loads the product-level attribute declarations of a base
// product, keyed by taxonomy name.
func (s *Service) Descriptors(postID string) (map[string]*models.AttributeDescriptor, error) {
	raw, err := s.store.PostMeta(postID, models.MetaProductAttrs)
	if err != nil {
		return nil, err
	}
	descs := make(map[string]*models.AttributeDescriptor)
	if raw == "" {
		return descs, nil
	}
	if err := json.Unmarshal([]byte(raw), &descs); err != nil {
		return nil, errors.Wrapf(err, "corrupt attribute meta on %s", postID)
	}
	return descs, nil
}

// SaveDescriptors persists the attribute declarations in one write.
func (s *Service) SaveDescriptors(postID string, descs map[string]*models.AttributeDescriptor) error {
	b, err := json.Marshal(descs)
	if err != nil {
		return err
	}
	return s.store.SetPostMeta(postID, models.MetaProductAttrs, string(b))
}

// Selection reads a variation's own attribute choices: taxonomy name to
// selected term slug.
func (s *Service) Selection(variationID string) (map[string]string, error) {
	meta, err := s.store.PostMetaByPrefix(variationID, models.MetaAttributeSelectionPrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[strings.TrimPrefix(k, models.MetaAttributeSelectionPrefix)] = v
	}
	return out, nil
}

// ChecksumFor computes the identity fingerprint and its debug form for
// a catalog post. For variations the title always comes from the base
// product, never the variation's own copy.
func (s *Service) ChecksumFor(postID string) (checksum, debug string, err error) {
	post, err := s.store.PostByID(postID)
	if err != nil {
		return "", "", err
	}
	if post == nil {
		return "", "", errors.Wrapf(ErrNotFound, "post %s", postID)
	}

	ref, err := s.Kind(post)
	if err != nil {
		return "", "", err
	}

	title := post.Title
	attrs := map[string]ValuePayload{}

	if ref.Kind == models.KindVariant {
		base, err := s.store.PostByID(ref.ParentID)
		if err != nil {
			return "", "", err
		}
		if base == nil {
			return "", "", errors.Wrapf(ErrNotFound, "base product %s", ref.ParentID)
		}
		title = base.Title

		selection, err := s.Selection(postID)
		if err != nil {
			return "", "", err
		}
		for taxonomy, slug := range selection {
			term, err := s.store.TermBySlug(taxonomy, slug)
			if err != nil {
				return "", "", err
			}
			code := strings.TrimPrefix(taxonomy, models.TaxonomyPrefix)
			payload := ValuePayload{Slug: slug}
			if term != nil {
				payload.Name = term.Name
			}
			attrs[code] = payload
		}
	}

	sku, err := s.store.PostMeta(postID, models.MetaSKU)
	if err != nil {
		return "", "", err
	}

	return Checksum(title, sku, attrs), DebugString(title, sku, attrs), nil
}
