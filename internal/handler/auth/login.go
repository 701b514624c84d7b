package auth

import (
	"errors"
	"net/http"
	"strings"

	"e-waste-pickup/internal/api"
	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/service"
	"e-waste-pickup/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
)

// @Summary     Log in a user
// @Description 使用 Email 與 Password 驗證，回傳使用者資料與存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.LoginRequest true "登入資料"
// @Success     200 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}

		// Email 不存在與密碼錯誤回同一種錯誤，不洩漏哪個欄位有誤
		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid credentials"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		authUser, err := authenticateUser(*user, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid credentials"})
		}

		token, err := issueAccessToken(*authUser, service.AccessTokenTTL())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		return c.JSON(http.StatusOK, api.AuthResponse{
			User:  api.NewUserResponse(authUser),
			Token: token,
		})
	}
}
