package middleware

import (
	"errors"
	"net/http"
	"strings"

	"e-waste-pickup/internal/api"
	"e-waste-pickup/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("Missing authorization")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errors.New("Invalid token")
	}
	claims, err := service.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, errors.New("Invalid token")
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer Token，並把解析出的身分放進 context
// 供後續 handler 使用；驗證失敗一律 401，商業邏輯不會被執行
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := extractClaims(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin 在 RequireAuth 之上加一道管理員檢查
// 身分有效但缺管理員權限時回 403，與 401 為可區分的兩種失敗
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireAuth(func(c echo.Context) error {
		claims := c.Get(ContextUserKey).(*service.CustomClaims)
		if !claims.IsAdmin {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Forbidden"})
		}
		return next(c)
	})
}
