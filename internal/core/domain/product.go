package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a marketplace listing. Price is stored in integer cents.
// OwnerID is set once at creation from the authenticated principal and is
// never changed by updates.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Price       int       `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy returns the owning user id for ownership checks.
func (p *Product) OwnedBy() string { return p.OwnerID }
