package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/utils"
	"github.com/spf13/viper"
)

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		// без настроенных ключей админка закрыта
		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" || viper.GetString(constants.ViperJWTKey) == "" {
			return constants.ErrUnauthorized
		}

		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != secret {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
