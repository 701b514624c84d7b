package auth

import (
	"errors"
	"net/http"
	"strings"

	"e-waste-pickup/internal/api"
	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/model"
	"e-waste-pickup/internal/service"
	"e-waste-pickup/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	createUser       = store.CreateUser
	issueAccessToken = service.IssueAccessToken
)

// @Summary     Sign up a new user
// @Description 建立新帳號並回傳使用者資料與存取令牌 (Email 會自動轉小寫)
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.SignupRequest true "註冊資料"
// @Success     200 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /signup [post]
func SignupHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}

		// Email 轉為小寫以確保一致性；唯一性由資料庫約束把關
		req.Email = strings.ToLower(req.Email)

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email already used"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		token, err := issueAccessToken(*user, service.AccessTokenTTL())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		return c.JSON(http.StatusOK, api.AuthResponse{
			User:  api.NewUserResponse(user),
			Token: token,
		})
	}
}
