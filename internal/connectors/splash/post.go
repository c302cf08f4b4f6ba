package splash

import (
	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/attributes"
	"woosync/internal/services/variants"
	"woosync/internal/store"
)

// PostObject maps ordinary posts and pages through the protocol. One
// instance serves one post type.
type PostObject struct {
	store    store.Store
	ml       multilang.Translator
	log      *logger.Logger
	postType string
	name     string
}

func NewPostObject(st store.Store, ml multilang.Translator, log *logger.Logger, postType, name string) *PostObject {
	return &PostObject{store: st, ml: ml, log: log, postType: postType, name: name}
}

func (o *PostObject) Type() string { return o.name }

func (o *PostObject) Fields() []Field {
	return []Field{
		{ID: "title", Type: TypeMVarchar, Name: "Title", Required: true},
		{ID: "slug", Type: TypeVarchar, Name: "Slug"},
		{ID: "content", Type: TypeMVarchar, Name: "Content"},
		{ID: "status", Type: TypeVarchar, Name: "Status",
			Choices: []string{
				models.PostStatusPublish,
				models.PostStatusDraft,
				models.PostStatusTrash,
			}},
	}
}

func (o *PostObject) List(offset, limit int) ([]map[string]interface{}, int64, error) {
	posts, total, err := o.store.PostsByType(o.postType, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]map[string]interface{}, 0, len(posts))
	for i := range posts {
		out = append(out, o.row(&posts[i]))
	}
	return out, total, nil
}

func (o *PostObject) Get(id string) (map[string]interface{}, error) {
	post, err := o.store.PostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Type != o.postType {
		return nil, variants.ErrNotFound
	}
	return o.row(post), nil
}

func (o *PostObject) Set(id string, data map[string]interface{}) (string, error) {
	titles := liftLocaleMap(data["title"], o.ml.DefaultLocale())

	if id == "" {
		post := &models.Post{
			Type:   o.postType,
			Status: models.PostStatusPublish,
			Title:  o.ml.Encode(titles),
			Slug:   attributes.Slugify(titles[o.ml.DefaultLocale()]),
		}
		if v := asString(data["slug"]); v != "" {
			post.Slug = v
		}
		if v := asString(data["status"]); v != "" {
			post.Status = v
		}
		if content := liftLocaleMap(data["content"], o.ml.DefaultLocale()); len(content) > 0 {
			c := o.ml.Encode(content)
			post.Content = &c
		}
		if err := o.store.CreatePost(post); err != nil {
			return "", err
		}
		return post.ID, nil
	}

	post, err := o.store.PostByID(id)
	if err != nil {
		return "", err
	}
	if post == nil || post.Type != o.postType {
		return "", variants.ErrNotFound
	}
	if len(titles) > 0 {
		post.Title = o.ml.Encode(titles)
	}
	if v := asString(data["slug"]); v != "" {
		post.Slug = v
	}
	if v := asString(data["status"]); v != "" {
		post.Status = v
	}
	if content := liftLocaleMap(data["content"], o.ml.DefaultLocale()); len(content) > 0 {
		c := o.ml.Encode(content)
		post.Content = &c
	}
	if err := o.store.UpdatePost(post); err != nil {
		return "", err
	}
	return post.ID, nil
}

func (o *PostObject) Delete(id string) error {
	post, err := o.store.PostByID(id)
	if err != nil {
		return err
	}
	if post == nil || post.Type != o.postType {
		return variants.ErrNotFound
	}
	return o.store.DeletePost(id)
}

func (o *PostObject) row(post *models.Post) map[string]interface{} {
	row := map[string]interface{}{
		"id":     post.ID,
		"title":  o.ml.DecodeAll(post.Title),
		"slug":   post.Slug,
		"status": post.Status,
	}
	if post.Content != nil {
		row["content"] = o.ml.DecodeAll(*post.Content)
	}
	return row
}
