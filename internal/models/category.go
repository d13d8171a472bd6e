package models

import (
	"encoding/json"
	"time"
)

// CategoryType says which transactions a category may be attached to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Accepts reports whether a transaction of type t may use a category of type c.
func (c CategoryType) Accepts(t TransactionType) bool {
	return string(c) == string(t)
}

// CategoryScope is either DefaultScope (shared by every user) or OwnedScope.
type CategoryScope interface {
	isScope()
}

// DefaultScope marks a category shared by every owner.
type DefaultScope struct{}

// OwnedScope marks a category private to one owner.
type OwnedScope struct {
	OwnerID int64
}

func (DefaultScope) isScope() {}
func (OwnedScope) isScope()   {}

// ScopeFromOwner maps the nullable owner_id column to a scope.
func ScopeFromOwner(ownerID *int64) CategoryScope {
	if ownerID == nil {
		return DefaultScope{}
	}
	return OwnedScope{OwnerID: *ownerID}
}

// OwnerOf maps a scope back to the nullable owner_id column.
func OwnerOf(s CategoryScope) *int64 {
	if o, ok := s.(OwnedScope); ok {
		id := o.OwnerID
		return &id
	}
	return nil
}

// Category labels income or expense transactions.
type Category struct {
	ID        int64         `db:"id"`
	Scope     CategoryScope `db:"-"`
	Name      string        `db:"name"`
	Type      CategoryType  `db:"type"`
	Icon      string        `db:"icon"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// IsDefault reports whether the category is shared by every owner.
func (c Category) IsDefault() bool {
	_, ok := c.Scope.(DefaultScope)
	return ok
}

// OwnedBy reports whether ownerID owns the category.
func (c Category) OwnedBy(ownerID int64) bool {
	o, ok := c.Scope.(OwnedScope)
	return ok && o.OwnerID == ownerID
}

// VisibleTo reports whether ownerID may attach the category to a transaction.
func (c Category) VisibleTo(ownerID int64) bool {
	return c.IsDefault() || c.OwnedBy(ownerID)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int64        `json:"id"`
		OwnerID   *int64       `json:"owner_id"`
		IsDefault bool         `json:"is_default"`
		Name      string       `json:"name"`
		Type      CategoryType `json:"type"`
		Icon      string       `json:"icon"`
		CreatedAt time.Time    `json:"created_at"`
		UpdatedAt time.Time    `json:"updated_at"`
	}{c.ID, OwnerOf(c.Scope), c.IsDefault(), c.Name, c.Type, c.Icon, c.CreatedAt, c.UpdatedAt})
}
