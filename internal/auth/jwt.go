package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// JWTManager validates HS256 access tokens carrying the caller's id and
// subscription tier. Tokens are issued by the account service sharing the
// secret and issuer.
type JWTManager struct {
	secret []byte
	issuer string
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// accessClaims extends standard JWT claims with the subscription tier.
type accessClaims struct {
	jwt.RegisteredClaims
	Tier string `json:"tier,omitempty"`
}

// ValidateAccessToken parses and validates a JWT access token.
// Returns the user ID and tier if valid. A missing or unknown tier claim
// is reported as the free tier.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, domain.Tier, error) {
	if tokenString == "" {
		return uuid.Nil, "", fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return uuid.Nil, "", fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject UUID: %w", err)
	}

	tier := domain.Tier(claims.Tier)
	if !tier.IsValid() {
		tier = domain.TierFree
	}

	return userID, tier, nil
}
