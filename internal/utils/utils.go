package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/geevapp/geev/internal/config"
)

// GenerateJWT issues a signed token whose subject is the account address.
// The subject is what the auth middleware hands to handlers as the
// authenticated actor.
func GenerateJWT(address string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub": address,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}
