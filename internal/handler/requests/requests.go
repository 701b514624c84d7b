package requests

import (
	"net/http"

	"e-waste-pickup/internal/api"
	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/middleware"
	"e-waste-pickup/internal/model"
	"e-waste-pickup/internal/service"
	"e-waste-pickup/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createRequest      = store.CreateRequest
	listRequestsByUser = store.ListRequestsByUser
)

// @Summary     Submit a pickup request
// @Description 以當前使用者身分建立回收請求，初始狀態為 pending
// @Tags        requests
// @Accept      json
// @Produce     json
// @Param       body body api.CreateRequestRequest true "請求內容"
// @Success     200 {object} api.RequestResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /requests [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid token"})
		}

		var req api.CreateRequestRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing fields"})
		}

		created, err := createRequest(c.Request().Context(), db, &model.Request{
			UserID:        claims.UserID,
			ItemType:      req.ItemType,
			Quantity:      req.Quantity,
			Address:       req.Address,
			Phone:         req.Phone,
			PreferredDate: req.PreferredDate,
		})
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		return c.JSON(http.StatusOK, api.RequestResponse{Request: api.NewRequestData(created)})
	}
}

// @Summary     List my pickup requests
// @Description 回傳當前使用者的所有回收請求，新的在前
// @Tags        requests
// @Produce     json
// @Success     200 {object} api.RequestListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /requests/mine [get]
func MineHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid token"})
		}

		details, err := listRequestsByUser(c.Request().Context(), db, claims.UserID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		return c.JSON(http.StatusOK, api.NewRequestListResponse(details))
	}
}
