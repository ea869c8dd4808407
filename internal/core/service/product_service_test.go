package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	seq      int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *domain.Product) (*domain.Product, error) {
	copy := cloneProduct(p)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("p-%d", r.seq)
	}
	r.products[copy.ID] = cloneProduct(copy)
	return cloneProduct(copy), nil
}

func (r *stubProductRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

var (
	userA = domain.Principal{SubjectID: "user-a", Email: "a@example.com", Roles: []string{domain.RoleUser}}
	userB = domain.Principal{SubjectID: "user-b", Email: "b@example.com", Roles: []string{domain.RoleUser}}
	admin = domain.Principal{SubjectID: "user-z", Email: "z@example.com", Roles: []string{domain.RoleAdmin}}
)

func TestProductService_Create_ForcesOwner(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), userA, ports.ProductInput{Name: "Phone", Price: 59900, Category: "Electronics", Stock: 10})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.OwnerID != userA.SubjectID {
		t.Fatalf("expected owner %s, got %s", userA.SubjectID, created.OwnerID)
	}
}

func TestProductService_Update_PreservesOwner(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), userA, ports.ProductInput{Name: "Phone", Price: 59900, Category: "Electronics", Stock: 10})

	updated, err := svc.Update(context.Background(), userA, created.ID, ports.ProductInput{Name: "Phone X", Price: 64900, Category: "Electronics", Stock: 8})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.OwnerID != userA.SubjectID {
		t.Fatalf("owner must be immutable, got %s", updated.OwnerID)
	}
	if updated.Name != "Phone X" || updated.Price != 64900 {
		t.Fatalf("fields not updated: %+v", updated)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.OwnerID != userA.SubjectID {
		t.Fatalf("stored owner changed: %s", stored.OwnerID)
	}
}

func TestProductService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), userA, ports.ProductInput{Name: "Phone", Price: 59900})

	if _, err := svc.Update(context.Background(), userB, created.ID, ports.ProductInput{Name: "Hijacked"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProductService_Delete_Ownership(t *testing.T) {
	cases := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{"non-owner forbidden", userB, domain.ErrForbidden},
		{"owner allowed", userA, nil},
		{"admin allowed", admin, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubProductRepo()
			svc := NewProductService(repo, nil, zerolog.Nop())
			created, _ := svc.Create(context.Background(), userA, ports.ProductInput{Name: "Phone"})

			err := svc.Delete(context.Background(), tc.principal, created.ID)
			if err != tc.wantErr {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				if ok, _ := repo.ExistsByID(context.Background(), created.ID); ok {
					t.Fatalf("product should be gone")
				}
			}
		})
	}
}

func TestProductService_Delete_MissingReportedBeforeOwnership(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	// userB owns nothing; a missing id must yield NotFound, not Forbidden.
	if err := svc.Delete(context.Background(), userB, "missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_List_FiltersByCategory(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	_, _ = svc.Create(context.Background(), userA, ports.ProductInput{Name: "Phone", Category: "Electronics"})
	_, _ = svc.Create(context.Background(), userA, ports.ProductInput{Name: "Novel", Category: "Books"})

	books, err := svc.List(context.Background(), "Books")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 1 || books[0].Name != "Novel" {
		t.Fatalf("unexpected category filter result: %+v", books)
	}

	all, _ := svc.List(context.Background(), "")
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
}
