package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-0123456789")

func signHS256(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return token
}

func newHS256Extractor(t *testing.T, cfg Config) *Extractor {
	t.Helper()

	cfg.SigningMethod = MethodHS256
	if cfg.Key == nil {
		cfg.Key = testSecret
	}

	e, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	return e
}

func TestPermissionsHS256(t *testing.T) {
	e := newHS256Extractor(t, Config{})

	token := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read", "doc.write"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	got, err := e.Permissions(token)
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if want := []string{"doc.read", "doc.write"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Permissions = %v, want %v", got, want)
	}
}

func TestPermissionsMissingClaim(t *testing.T) {
	e := newHS256Extractor(t, Config{})

	token := signHS256(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got, err := e.Permissions(token)
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Permissions = %v, want empty set for absent claim", got)
	}
}

func TestPermissionsCustomClaim(t *testing.T) {
	e := newHS256Extractor(t, Config{PermissionsClaim: "grants"})

	token := signHS256(t, testSecret, jwt.MapClaims{
		"grants": []string{"admin.panel"},
		"perms":  []string{"decoy"},
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	got, err := e.Permissions(token)
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if want := []string{"admin.panel"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Permissions = %v, want %v", got, want)
	}
}

func TestPermissionsMalformedClaim(t *testing.T) {
	e := newHS256Extractor(t, Config{})

	for name, claim := range map[string]any{
		"string not array": "doc.read",
		"numeric entries":  []any{1, 2},
	} {
		token := signHS256(t, testSecret, jwt.MapClaims{
			"perms": claim,
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		if _, err := e.Permissions(token); !errors.Is(err, ErrMalformedClaims) {
			t.Fatalf("%s: expected ErrMalformedClaims, got %v", name, err)
		}
	}
}

func TestPermissionsBadSignature(t *testing.T) {
	e := newHS256Extractor(t, Config{})

	token := signHS256(t, []byte("some-other-secret-here"), jwt.MapClaims{
		"perms": []string{"doc.read"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	if _, err := e.Permissions(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPermissionsExpiry(t *testing.T) {
	e := newHS256Extractor(t, Config{Leeway: 30 * time.Second})

	expired := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	if _, err := e.Permissions(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	withinLeeway := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"exp":   time.Now().Add(-10 * time.Second).Unix(),
	})
	if _, err := e.Permissions(withinLeeway); err != nil {
		t.Fatalf("token within leeway rejected: %v", err)
	}
}

func TestPermissionsIssuerAudience(t *testing.T) {
	e := newHS256Extractor(t, Config{Issuer: "issuer-a", Audience: "svc-b"})

	good := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"iss":   "issuer-a",
		"aud":   "svc-b",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	if _, err := e.Permissions(good); err != nil {
		t.Fatalf("matching issuer/audience rejected: %v", err)
	}

	bad := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"iss":   "issuer-x",
		"aud":   "svc-b",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	if _, err := e.Permissions(bad); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for issuer mismatch, got %v", err)
	}
}

func TestPermissionsRequireExpiry(t *testing.T) {
	e := newHS256Extractor(t, Config{RequireExpiry: true})

	token := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
	})
	if _, err := e.Permissions(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing exp, got %v", err)
	}
}

func TestPermissionsEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	e, err := NewExtractor(Config{
		SigningMethod: MethodEd25519,
		Key:           pub,
	})
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(priv)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	got, err := e.Permissions(token)
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if want := []string{"doc.read"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Permissions = %v, want %v", got, want)
	}
}

func TestPermissionsMethodMismatch(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	e, err := NewExtractor(Config{
		SigningMethod: MethodEd25519,
		Key:           pub,
	})
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	token := signHS256(t, testSecret, jwt.MapClaims{
		"perms": []string{"doc.read"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	if _, err := e.Permissions(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for method mismatch, got %v", err)
	}
}

func TestNewExtractorValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"unsupported method", Config{SigningMethod: "rs256", Key: testSecret}},
		{"missing hs256 key", Config{SigningMethod: MethodHS256}},
		{"short ed25519 key", Config{SigningMethod: MethodEd25519, Key: []byte("short")}},
		{"negative leeway", Config{SigningMethod: MethodHS256, Key: testSecret, Leeway: -time.Second}},
		{"excessive leeway", Config{SigningMethod: MethodHS256, Key: testSecret, Leeway: time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewExtractor(tc.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
