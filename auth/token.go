package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"playroom/domain"
)

// Claims is the data stored inside a session JWT.
type Claims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTProvider is the in-house identity provider: session tokens are HS256
// JWTs signed with the platform secret. It implements
// contract.IdentityProvider.
type JWTProvider struct {
	secret   []byte
	issuer   string
	duration time.Duration
}

func NewJWTProvider(secret []byte, duration time.Duration) *JWTProvider {
	return &JWTProvider{secret: secret, issuer: "playroom", duration: duration}
}

// Generate creates a signed session token for a user.
func (p *JWTProvider) Generate(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    p.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Verify parses and validates the signature and expiration of a token, then
// maps its claims to an Identity.
func (p *JWTProvider) Verify(_ context.Context, tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return domain.Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, jwt.ErrSignatureInvalid
	}
	return domain.Identity{ID: claims.UserID, Email: claims.Email}, nil
}
