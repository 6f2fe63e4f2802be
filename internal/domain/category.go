package domain

import (
	"errors"
	"time"
)

// ErrCategoryOwnParent is the one category invariant the client enforces
// before submit; the tree itself is validated server-side.
var ErrCategoryOwnParent = errors.New("a category may not be its own parent")

type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *string    `json:"parentId"`
	Children  []Category `json:"children,omitempty"`
	Image     string     `json:"image"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ValidateParent rejects a category that references itself as parent.
func (c *Category) ValidateParent() error {
	if c.ParentID != nil && *c.ParentID == c.ID && c.ID != "" {
		return ErrCategoryOwnParent
	}
	return nil
}
