package domain

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

// Category groups products. Categories have no owner: mutations are gated
// purely on the admin role at the route layer.
type Category struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	Icon         string `json:"icon,omitempty" bson:"icon,omitempty"`
	ProductCount int    `json:"product_count" bson:"product_count"`
}
