package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/spf13/viper"
)

// AuthTokenWrapper - claims админского токена.
type AuthTokenWrapper struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper, ttl time.Duration) (string, error) {
	if ttl > 0 {
		wrapper.ExpiresAt = time.Now().Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString([]byte(viper.GetString(constants.ViperJWTKey)))
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

func ParseAuthToken(tokenStr string) (*AuthTokenWrapper, error) {
	wrapper := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(tokenStr, wrapper, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperJWTKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}
	if !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
