// Package token mints and checks the signed bearer tokens that carry all
// session state. Nothing is stored server side; a token is the session.
package token

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-blog-admin/internal/model"
	"go-blog-admin/pkg/apierror"
)

// Claims is what a verified token asserts about its bearer. Role comes from
// the token for convenience; authorization decisions re-read it from the
// directory record on every request.
type Claims struct {
	UserID    string
	Role      model.Role
	ExpiresAt time.Time
}

type signedClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

// New fails when the secret is missing so that a misconfigured process dies
// at startup instead of minting unverifiable tokens per request.
func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, apierror.New("CONFIG_ERROR", "token signing secret is empty", "", http.StatusInternalServerError)
	}
	if ttl <= 0 {
		return nil, apierror.New("CONFIG_ERROR", "token ttl must be positive", "", http.StatusInternalServerError)
	}

	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is the fixed lifetime of issued tokens. Tokens are not renewable;
// expiry means re-authentication.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) Issue(userID string, role model.Role) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := signedClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks signature, expiry and structure, in that order. Token content
// comes from untrusted callers, so a bad token is a normal outcome, not an
// error: the second return value is false and no detail leaks out.
func (s *Service) Verify(tokenString string) (Claims, bool) {
	var claims signedClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}

	if claims.ExpiresAt == nil || claims.Subject == "" {
		return Claims{}, false
	}

	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return Claims{}, false
	}

	return Claims{
		UserID:    claims.Subject,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
