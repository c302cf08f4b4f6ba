// Package splash maps store data onto the remote synchronization
// protocol's field-based object interface. Each object type exposes a
// flat field list and generic list/get/set/delete operations; the
// protocol framework on the far side never sees store internals.
package splash

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type FieldType string

const (
	TypeVarchar  FieldType = "varchar"
	TypeMVarchar FieldType = "mvarchar" // multilingual text
	TypeBool     FieldType = "bool"
	TypeDouble   FieldType = "double"
	TypePrice    FieldType = "price"
	TypeEmail    FieldType = "email"
	TypeDate     FieldType = "date"
	TypeList     FieldType = "list"
)

// Field describes one syncable field of an object. Choices is set only
// for fields with a closed value set.
type Field struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Name     string    `json:"name"`
	Required bool      `json:"required"`
	ReadOnly bool      `json:"read_only"`
	Choices  []string  `json:"choices,omitempty"`
}

// Object is one syncable entity type. Set with an empty id creates;
// otherwise it updates in place and returns the same id.
type Object interface {
	Type() string
	Fields() []Field
	List(offset, limit int) ([]map[string]interface{}, int64, error)
	Get(id string) (map[string]interface{}, error)
	Set(id string, data map[string]interface{}) (string, error)
	Delete(id string) error
}

// Registry indexes the objects the connector exposes.
type Registry struct {
	objects map[string]Object
}

func NewRegistry() *Registry {
	return &Registry{objects: make(map[string]Object)}
}

func (r *Registry) Register(o Object) {
	r.objects[o.Type()] = o
}

func (r *Registry) Object(objectType string) (Object, error) {
	o, ok := r.objects[objectType]
	if !ok {
		return nil, fmt.Errorf("unknown object type %q", objectType)
	}
	return o, nil
}

func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.objects))
	for t := range r.objects {
		out = append(out, t)
	}
	return out
}

// liftLocaleMap normalizes a wire value that may be a plain scalar or a
// locale-keyed mapping into a locale map, lifting scalars onto the
// default locale.
func liftLocaleMap(v interface{}, defaultLocale string) map[string]string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return map[string]string{defaultLocale: t}
	case map[string]string:
		return t
	case map[string]interface{}:
		out := make(map[string]string, len(t))
		for locale, raw := range t {
			if s, ok := raw.(string); ok {
				out[locale] = s
			}
		}
		return out
	}
	return nil
}

// asString flattens a wire scalar to its string form. JSON decoding
// hands numbers over as float64, so numeric prices land here too.
func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
