// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"e-waste-pickup/internal/cache"
	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/handler"
	"e-waste-pickup/internal/handler/admin"
	"e-waste-pickup/internal/handler/auth"
	"e-waste-pickup/internal/handler/requests"
	"e-waste-pickup/internal/middleware"
	"e-waste-pickup/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 註冊與登入
	api.POST("/signup", auth.SignupHandler(db))
	api.POST("/login", auth.LoginHandler(db))

	// 使用者自身的回收請求
	apiRequests := api.Group("/requests", middleware.RequireAuth)
	apiRequests.POST("", requests.CreateHandler(db))
	apiRequests.GET("/mine", requests.MineHandler(db))

	// 管理員專屬操作
	apiAdmin := api.Group("/admin/requests", middleware.RequireAdmin)
	apiAdmin.GET("", admin.ListHandler(db))
	apiAdmin.PUT("/:id/status", admin.UpdateStatusHandler(db, rdb, wp))
	apiAdmin.GET("/search", admin.SearchHandler(db))
}
