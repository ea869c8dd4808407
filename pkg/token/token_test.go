package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 bytes

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	c, err := New(testSecret, ttl)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestNew_RejectsShortSecret(t *testing.T) {
	if _, err := New("too-short", time.Hour); err == nil {
		t.Fatalf("expected error for secret shorter than 32 bytes")
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	c := newTestCodec(t, 0)
	if c.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", c.TTL())
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	now := time.Now()
	signed, err := c.Issue("alice@example.com", "u-1", []string{"user", "admin"}, now)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := c.Parse(signed)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "user" || claims.Roles[1] != "admin" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if claims.IssuedAt.Unix() != now.Unix() {
		t.Fatalf("iat mismatch: %v vs %v", claims.IssuedAt, now)
	}
	if claims.ExpiresAt.Unix() != now.Add(time.Hour).Unix() {
		t.Fatalf("exp mismatch: %v", claims.ExpiresAt)
	}
}

func TestCodec_Deterministic(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	now := time.Now()
	a, _ := c.Issue("bob@example.com", "u-2", []string{"user"}, now)
	b, _ := c.Issue("bob@example.com", "u-2", []string{"user"}, now)
	if a != b {
		t.Fatalf("HMAC signing should be deterministic")
	}
}

func TestCodec_ExpiryBoundary(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)

	// Issued so the token expires one second from the real clock: still valid.
	stillValid, _ := c.Issue("a@example.com", "u-1", []string{"user"}, time.Now().Add(-ttl+time.Second))
	if _, err := c.Parse(stillValid); err != nil {
		t.Fatalf("token expiring in 1s should still parse, got %v", err)
	}

	// Issued so the token expired one second ago: rejected as expired.
	expired, _ := c.Issue("a@example.com", "u-1", []string{"user"}, time.Now().Add(-ttl-time.Second))
	if _, err := c.Parse(expired); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	signed, _ := c.Issue("a@example.com", "u-1", []string{"user"}, time.Now())
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := c.Parse(tampered); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestCodec_WrongKey(t *testing.T) {
	issuer := newTestCodec(t, time.Hour)
	verifier, err := New("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	signed, _ := issuer.Issue("a@example.com", "u-1", []string{"user"}, time.Now())
	if _, err := verifier.Parse(signed); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature under a different key, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := c.Parse(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", raw, err)
		}
	}
}

func TestCodec_Validate(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	signed, _ := c.Issue("carol@example.com", "u-3", []string{"user"}, time.Now())

	if !c.Validate(signed, "carol@example.com") {
		t.Fatalf("expected valid token for matching subject")
	}
	if c.Validate(signed, "mallory@example.com") {
		t.Fatalf("token must not validate for a different subject")
	}
	if c.Validate("garbage", "carol@example.com") {
		t.Fatalf("garbage must not validate")
	}
}
