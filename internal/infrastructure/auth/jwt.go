// Package auth verifies admin bearer tokens signed with a shared HS256 secret.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/football-league/internal/domain/user"
	"github.com/riskibarqy/football-league/internal/usecase"
)

// Claims carries the caller role next to the registered claims.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

// VerifyAccessToken checks signature, expiry and issuer. Every failure maps
// to usecase.ErrUnauthorized.
func (v *JWTVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if len(v.secret) == 0 {
		return user.Principal{}, fmt.Errorf("%w: token verifier is not configured", usecase.ErrDependencyUnavailable)
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
	}
	if !claims.VerifyExpiresAt(v.now(), true) {
		return user.Principal{}, fmt.Errorf("%w: token expired or missing exp", usecase.ErrUnauthorized)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return user.Principal{}, fmt.Errorf("%w: unexpected token issuer", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is required", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// Issue signs a token for subject. Used by the admin CLI and tests.
func (v *JWTVerifier) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
