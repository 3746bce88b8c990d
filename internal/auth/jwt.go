// Package auth validates the bearer tokens that carry
// caller identity for audit attribution and the metrics endpoint.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "bighammer-catalog"

// CustomClaims extends JWT claims with the user detail ID / Étend les claims JWT avec l'ID utilisateur
type CustomClaims struct {
	jwt.RegisteredClaims
	UserDetailID uint `json:"user_detail_id"`
}

// GenerateToken creates a signed access token / Crée un token d'accès signé
func GenerateToken(userDetailID uint, jwtKey string, duration time.Duration) (string, error) {
	if len(jwtKey) < 32 {
		return "", errors.New("JWT key too weak")
	}

	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userDetailID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
		UserDetailID: userDetailID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtKey))
}

// ValidateJWT validates JWT token / Valide le token JWT
func ValidateJWT(tokenStr, jwtKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		if claims.Issuer != issuer {
			return nil, errors.New("invalid issuer")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
