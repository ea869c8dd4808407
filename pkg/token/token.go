// Package token issues and verifies the signed bearer tokens used for
// stateless authentication. Tokens are compact JWS (three base64url
// segments) signed with HMAC-SHA256 under a single static key loaded at
// startup; nothing is ever persisted server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretBytes is the minimum signing secret length: HMAC-SHA256 requires
// a key of at least 256 bits.
const minSecretBytes = 32

const defaultTTL = 24 * time.Hour

var ErrMalformed = errors.New("token malformed")
var ErrBadSignature = errors.New("token signature invalid")
var ErrExpired = errors.New("token expired")

// Claims is the signed payload carried by every token.
// Subject is the account email; UserID is the opaque account key used for
// ownership checks. Roles travel in the token so request handling never
// needs a store round-trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"uid"`
	Roles  []string `json:"roles"`
}

// Codec signs and verifies tokens. The key is immutable after construction
// and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New builds a Codec. It fails fast when the secret is too short for
// HMAC-SHA256 so a weak key never reaches production silently.
func New(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("token: signing secret must be at least %d bytes, got %d", minSecretBytes, len(secret))
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token for the given subject with issued-at now and
// expiry now + ttl. HMAC signing is deterministic: identical inputs produce
// identical tokens.
func (c *Codec) Issue(subject, userID string, roles []string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
		Roles:  roles,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse decodes and verifies a token, returning its claims.
// Failures collapse into three causes: ErrMalformed for anything
// structurally invalid, ErrBadSignature when the signature does not verify
// under the current key (a wrong key and a corrupted token are deliberately
// indistinguishable), and ErrExpired when exp is not in the future.
func (c *Codec) Parse(tokenText string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenText, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}

// Validate reports whether tokenText is a currently valid token for
// expectedSubject. Subject and expiry are always re-checked here even when
// the caller obtained a subject elsewhere, so a valid token for a different
// subject can never be substituted.
func (c *Codec) Validate(tokenText, expectedSubject string) bool {
	claims, err := c.Parse(tokenText)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
