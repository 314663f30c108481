package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/model"
)

// Claims represents actor token claims issued by the external identity
// provider.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"uid"`
	Role   model.Role `json:"role"`
}

// JWT parses actor tokens backed by symmetric HMAC. This service never
// issues sessions; token minting belongs to the identity provider that
// shares the secret.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT parser with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey}
}

// ParseActorToken validates the token and extracts the actor identity.
func (j *JWT) ParseActorToken(tokenString string) (model.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Actor{}, fmt.Errorf("failed to parse actor token: %w", err)
	}
	if !token.Valid {
		return model.Actor{}, fmt.Errorf("actor token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return model.Actor{}, fmt.Errorf("actor token has no user id")
	}
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleUser {
		return model.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return model.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// MintActorToken signs a token for the given actor. Used by tests and local
// tooling standing in for the identity provider.
func (j *JWT) MintActorToken(actor model.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: actor.ID,
		Role:   actor.Role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign actor token: %w", err)
	}

	return tokenString, nil
}
