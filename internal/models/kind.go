package models

// ProductKind classifies a catalog post once at load time so downstream
// code can match on it instead of re-checking post types everywhere.
type ProductKind int

const (
	KindSimple ProductKind = iota
	KindVariant
	KindBaseWithChildren
)

func (k ProductKind) String() string {
	switch k {
	case KindVariant:
		return "variant"
	case KindBaseWithChildren:
		return "variable"
	default:
		return "simple"
	}
}

// ProductRef is a classified catalog post. ParentID is set only for
// KindVariant; ChildIDs only for KindBaseWithChildren.
type ProductRef struct {
	Kind     ProductKind
	Post     *Post
	ParentID string
	ChildIDs []string
}
