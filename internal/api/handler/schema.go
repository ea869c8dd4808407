package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=8"`
	GivenName  string `json:"given_name"  validate:"required"`
	FamilyName string `json:"family_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Token      string `json:"token"`
}

// --- Products ---

// productRequest carries the client-controlled fields for create and update.
// There is deliberately no owner field: ownership comes from the bearer
// token, and any extra JSON property a client sends is dropped at bind time.
type productRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Price       int    `json:"price"       validate:"required,min=0"`
	Category    string `json:"category"    validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"       validate:"min=0"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Categories ---

type categoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon"`
}

type categoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	ProductCount int    `json:"product_count"`
}

// --- Orders ---

type createOrderRequest struct {
	Total  float64 `json:"total"  validate:"required,gt=0"`
	Status string  `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

type updateOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

type orderResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
