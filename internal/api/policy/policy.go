// Package policy holds the static route authorization rules as an ordered
// table. Rules are evaluated top-to-bottom with first match winning, which
// keeps precedence auditable and testable without any HTTP framework wiring.
package policy

import (
	"net/http"
	"strings"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// Kind classifies what a matched rule demands from the caller.
type Kind int

const (
	// Public routes are reachable without a principal.
	Public Kind = iota
	// Authenticated routes require any valid principal.
	Authenticated
	// RoleGated routes require a principal carrying one of Rule.Roles.
	RoleGated
)

// Rule is one row of the table: HTTP methods, a path pattern, and the
// requirement. An empty Methods slice matches every method. Patterns match
// exactly, or by prefix when they end in "/**" (the prefix itself matches
// too, so "/products/**" covers both /products and /products/42).
type Rule struct {
	Methods []string
	Pattern string
	Kind    Kind
	Roles   []string
}

// Decision is the outcome of evaluating a request against the table.
type Decision struct {
	Kind  Kind
	Roles []string
}

// Table is an ordered rule list. The zero table allows nothing; use Default
// or build one per deployment.
type Table []Rule

// Default is the marketplace rule table. Ownership on product and order
// mutations is deliberately not expressed here: the static tier only
// requires a principal, and the owner-or-admin decision runs inside the
// service once the resource is loaded.
var Default = Table{
	{Pattern: "/auth/**", Kind: Public},
	{Pattern: "/health/**", Kind: Public},
	{Pattern: "/metrics", Kind: Public},
	{Pattern: "/swagger/**", Kind: Public},

	{Methods: []string{http.MethodGet}, Pattern: "/products/mine", Kind: Authenticated},
	{Methods: []string{http.MethodGet}, Pattern: "/products/**", Kind: Public},
	{Methods: []string{http.MethodGet}, Pattern: "/categories/**", Kind: Public},
	{Methods: []string{http.MethodGet}, Pattern: "/orders/**", Kind: Public},

	{Methods: []string{http.MethodPost, http.MethodPut}, Pattern: "/products/**", Kind: Authenticated},
	{Methods: []string{http.MethodDelete}, Pattern: "/products/**", Kind: Authenticated},

	{Methods: []string{http.MethodPost, http.MethodPut, http.MethodDelete}, Pattern: "/categories/**", Kind: RoleGated, Roles: []string{domain.RoleAdmin}},

	{Methods: []string{http.MethodPost, http.MethodPut}, Pattern: "/orders/**", Kind: Authenticated},
	{Methods: []string{http.MethodDelete}, Pattern: "/orders/**", Kind: Authenticated},
}

// Evaluate returns the decision for a method and path. When no rule matches,
// the catch-all applies: authenticated.
func (t Table) Evaluate(method, path string) Decision {
	for _, r := range t {
		if r.matches(method, path) {
			return Decision{Kind: r.Kind, Roles: r.Roles}
		}
	}
	return Decision{Kind: Authenticated}
}

// Allows applies the decision to a principal (nil means anonymous).
// It returns domain.ErrUnauthenticated when no principal is present where
// one is required, and domain.ErrForbidden when the principal lacks every
// required role.
func (d Decision) Allows(principal *domain.Principal) error {
	switch d.Kind {
	case Public:
		return nil
	case Authenticated:
		if principal == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	default:
		if principal == nil {
			return domain.ErrUnauthenticated
		}
		for _, role := range d.Roles {
			if principal.HasRole(role) {
				return nil
			}
		}
		return domain.ErrForbidden
	}
}

func (r Rule) matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if m == method {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return matchPattern(r.Pattern, path)
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
