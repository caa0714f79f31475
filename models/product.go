package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry. Products are never mutated after load.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	IsNew       bool            `json:"isNew"`
	CreatedAt   time.Time       `json:"createdAt"`
	Description string          `json:"description"`
	Accent      string          `json:"accent,omitempty"` // CSS colour for the media tile
}

// HasTag reports whether the product carries the given tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
