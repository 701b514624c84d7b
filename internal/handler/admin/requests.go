package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"e-waste-pickup/internal/api"
	"e-waste-pickup/internal/cache"
	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/model"
	"e-waste-pickup/internal/store"
	"e-waste-pickup/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	listAllRequests     = store.ListAllRequests
	updateRequestStatus = store.UpdateRequestStatus
	searchRequests      = store.SearchRequests
)

// @Summary     List all pickup requests
// @Description 回傳所有使用者的回收請求，新的在前（限管理員）
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.RequestListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/requests [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		details, err := listAllRequests(c.Request().Context(), db)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}
		return c.JSON(http.StatusOK, api.NewRequestListResponse(details))
	}
}

// @Summary     Update request status
// @Description 更新指定請求的狀態，僅允許 pending 或 collected（限管理員）
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path int                            true "請求編號"
// @Param       body body api.UpdateRequestStatusRequest true "新狀態"
// @Success     200 {object} api.RequestResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/requests/{id}/status [put]
func UpdateStatusHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request ID"})
		}

		var req api.UpdateRequestStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status"})
		}
		if !model.ValidStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status"})
		}

		updated, err := updateRequestStatus(c.Request().Context(), db, id, req.Status)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Request not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}

		// 稽核紀錄走 worker pool，不佔用回應路徑
		status := updated.Status
		wp.Submit(func() {
			key := fmt.Sprintf("audit:request:%d", id)
			if err := rdb.Set(context.Background(), key, status, 0).Err(); err != nil {
				log.Printf("audit write failed for request %d: %v", id, err)
			}
		})

		return c.JSON(http.StatusOK, api.RequestResponse{Request: api.NewRequestDetailData(updated)})
	}
}

// @Summary     Search pickup requests
// @Description 依關鍵字與狀態過濾請求；q 比對品項、擁有者姓名、Email 與請求編號（限管理員）
// @Tags        admin
// @Produce     json
// @Param       q      query string false "關鍵字"
// @Param       status query string false "all、pending 或 collected"
// @Success     200 {object} api.RequestListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/requests/search [get]
func SearchHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := c.QueryParam("q")
		status := c.QueryParam("status")
		if status == "" {
			status = "all"
		}

		details, err := searchRequests(c.Request().Context(), db, q, status)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		}
		return c.JSON(http.StatusOK, api.NewRequestListResponse(details))
	}
}
