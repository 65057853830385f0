package apimiddleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminKeyHeader = "X-Admin-Key"
	AdminKeyQuery  = "admin_key"
)

type AdminKeyConfig struct {
	Skipper middleware.Skipper

	// HashedKey is the bcrypt hash of the admin key, see HashAdminKey.
	HashedKey []byte
}

// HashAdminKey hashes the configured admin key once at startup so the plain
// key doesn't have to be kept around by the middleware.
func HashAdminKey(key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("admin key is empty")
	}

	return bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
}

// AdminKeyAuth guards operator endpoints. The key is taken from the
// X-Admin-Key header, falling back to the admin_key query parameter.
func AdminKeyAuth(config AdminKeyConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			value, err := getAdminKeyFromRequest(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			if bcrypt.CompareHashAndPassword(config.HashedKey, []byte(value)) != nil {
				return echo.ErrUnauthorized
			}

			return next(c)
		}
	}
}

func getAdminKeyFromRequest(c echo.Context) (string, error) {
	if value := c.Request().Header.Get(AdminKeyHeader); value != "" {
		return value, nil
	}

	if value := c.QueryParam(AdminKeyQuery); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no admin key '%s' as header or '%s' as query param", AdminKeyHeader, AdminKeyQuery)
}
