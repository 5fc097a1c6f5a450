package jwt

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the token verification algorithm.
type SigningMethod string

const (
	MethodEd25519 SigningMethod = "ed25519"
	MethodHS256   SigningMethod = "hs256"
)

const defaultPermissionsClaim = "perms"

var (
	// ErrInvalidToken reports a token that failed signature or registered
	// claim validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMalformedClaims reports a permissions claim that is not an array
	// of strings.
	ErrMalformedClaims = errors.New("malformed permissions claim")
)

// Config describes how tokens are verified and where the permission slice
// lives.
type Config struct {
	SigningMethod SigningMethod
	// Key is the HS256 secret or the raw ed25519 public key.
	Key      []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
	// PermissionsClaim names the claim holding the permission array.
	// Defaults to "perms". An absent claim yields an empty set, not an
	// error: a token with no grants is valid.
	PermissionsClaim string
	RequireExpiry    bool
}

// Extractor validates tokens and pulls permission sets out of them. Safe for
// concurrent use.
type Extractor struct {
	config  Config
	key     any
	methods []string
}

// NewExtractor validates cfg and returns a ready Extractor.
func NewExtractor(cfg Config) (*Extractor, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.PermissionsClaim == "" {
		cfg.PermissionsClaim = defaultPermissionsClaim
	}

	e := &Extractor{config: cfg}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("hs256 requires a secret key")
		}
		e.key = cfg.Key
		e.methods = []string{jwt.SigningMethodHS256.Alg()}
	case MethodEd25519:
		if len(cfg.Key) != ed25519.PublicKeySize {
			return nil, errors.New("ed25519 requires a 32-byte public key")
		}
		e.key = ed25519.PublicKey(cfg.Key)
		e.methods = []string{jwt.SigningMethodEdDSA.Alg()}
	default:
		return nil, fmt.Errorf("unsupported signing method %q", cfg.SigningMethod)
	}

	return e, nil
}

// Permissions validates the token and returns the permission slice from the
// configured claim.
func (e *Extractor) Permissions(tokenString string) ([]string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(e.methods),
		jwt.WithLeeway(e.config.Leeway),
	}
	if e.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(e.config.Issuer))
	}
	if e.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(e.config.Audience))
	}
	if e.config.RequireExpiry {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return e.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	raw, ok := claims[e.config.PermissionsClaim]
	if !ok || raw == nil {
		return []string{}, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, ErrMalformedClaims
	}

	permissions := make([]string, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return nil, ErrMalformedClaims
		}
		permissions = append(permissions, s)
	}

	return permissions, nil
}
