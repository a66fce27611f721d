package jwt

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artemkav/moviebox/pkg/auth"
)

// Claims carries the identity assertion: the display name plus the
// user ID in the standard subject claim. No issued-at or expiry claim
// is set, so a token stays valid until the signing secret rotates.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: []byte(secret)}
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID.String(),
		},
		Name: user.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// ParseClaims verifies the signature (HS256 only) and returns the claims.
func ParseClaims(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
