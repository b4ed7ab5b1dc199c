package token

import (
	"errors"
	"time"

	"kyc-identity/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Class distinguishes access tokens from refresh tokens. A token issued as
// one class never verifies as the other.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

// Claims is the wire format shared with every consumer of these tokens:
// sub, type, iat, exp and jti. Changing the shape breaks interoperability.
type Claims struct {
	TokenType Class `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair carries one access and one refresh token for the same subject.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Codec issues and verifies signed bearer tokens. It is stateless and safe
// for concurrent use; validity is computed from content and signature alone.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a codec from the shared signing secret and algorithm
// identifier (HS256-family only) plus the class-default lifetimes.
func NewCodec(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, errors.New("unknown signing algorithm: " + algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("signing algorithm must be symmetric: " + algorithm)
	}

	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &Codec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue signs a token of the given class for subject using the class-default
// lifetime.
func (c *Codec) Issue(subject string, class Class) (string, error) {
	return c.IssueWithTTL(subject, class, c.defaultTTL(class))
}

// IssueWithTTL signs a token with an explicit lifetime. Negative lifetimes
// are allowed and yield an already-expired token.
func (c *Codec) IssueWithTTL(subject string, class Class, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// IssuePair issues a fresh access+refresh pair for subject. Every flow that
// establishes or renews a session goes through here. The random jti keeps
// concurrent pairs for the same subject distinct.
func (c *Codec) IssuePair(subject string) (*TokenPair, error) {
	access, err := c.Issue(subject, ClassAccess)
	if err != nil {
		return nil, err
	}

	refresh, err := c.Issue(subject, ClassRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Verify decodes tokenString and returns its claims only when the signature
// checks out, the expiration is in the future and the encoded class matches
// expected. Every failure collapses to domain.ErrInvalidToken so callers
// cannot tell which check rejected the token.
func (c *Codec) Verify(tokenString string, expected Class) (*Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != expected || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// SubjectOf verifies tokenString as expected class and returns its subject.
func (c *Codec) SubjectOf(tokenString string, expected Class) (string, error) {
	claims, err := c.Verify(tokenString, expected)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// AccessTTL returns the class-default access token lifetime, used by the
// transport layer for cookie expiry and the expires_in response field.
func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// RefreshTTL returns the class-default refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

func (c *Codec) defaultTTL(class Class) time.Duration {
	if class == ClassRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}
