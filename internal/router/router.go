package router

import (
	commonMiddleware "rdm/curations/common/middleware"
	"rdm/curations/internal/handler"
	"rdm/curations/internal/middleware"
	"rdm/curations/internal/svc"

	"github.com/gofiber/fiber/v2"
)

// Setup 设置路由
func Setup(app *fiber.App, sc *svc.ServiceContext) {
	// 中间件简写
	curator := middleware.CuratorMiddleware(sc.Permissions)
	oplog := func(module, action string) fiber.Handler {
		return middleware.OperationLogMiddleware(sc.DB, module, action)
	}

	// 全局中间件
	app.Use(commonMiddleware.CORS(), commonMiddleware.RequestID(), commonMiddleware.Logger(), commonMiddleware.Recover())

	authHandler := handler.NewAuthHandler(sc.Users)
	recordHandler := handler.NewRecordHandler(sc.Records, sc.Permissions)
	requestHandler := handler.NewRequestHandler(sc.Requests, sc.Records, sc.Events, sc.Pool, sc.Permissions)
	notificationHandler := handler.NewNotificationHandler(sc.Notifications)

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// ========== 公开路由 ==========
	pub := api.Group("/auth")
	pub.Post("/login", authHandler.Login)
	pub.Post("/logout", authHandler.Logout)

	// ========== 需要认证的路由 ==========
	authed := api.Group("", middleware.AuthMiddleware())

	// 认证相关
	ag := authed.Group("/auth")
	ag.Get("/user-info", authHandler.GetUserInfo)

	// ========== 记录与草稿 ==========
	records := authed.Group("/records")
	records.Post("", oplog("record", "create"), recordHandler.Create)
	records.Post("/list", recordHandler.List)
	records.Get("/:pid", recordHandler.Get)
	records.Get("/:pid/draft", recordHandler.GetDraft)
	records.Put("/:pid/draft", oplog("record", "update"), recordHandler.UpdateDraft)
	records.Delete("/:pid/draft", oplog("record", "delete"), recordHandler.DeleteDraft)
	records.Post("/:pid/draft/actions/publish", oplog("record", "publish"), recordHandler.Publish)
	records.Get("/:pid/review", requestHandler.Review)

	// ========== 策展入口 ==========
	curations := authed.Group("/curations")
	curations.Post("", oplog("curation", "create"), requestHandler.Create)
	curations.Get("", requestHandler.Search)
	curations.Get("/open", curator, requestHandler.Open)

	// ========== 策展请求 ==========
	requests := authed.Group("/requests")
	requests.Post("/list", requestHandler.List)
	requests.Get("/:id", requestHandler.Get)
	requests.Put("/:id", oplog("request", "update"), requestHandler.Update)
	requests.Delete("/:id", oplog("request", "delete"), requestHandler.Delete)
	requests.Post("/:id/actions/:action", oplog("request", "action"), requestHandler.Action)
	requests.Get("/:id/timeline", requestHandler.Timeline)
	requests.Post("/:id/comments", oplog("request", "comment"), requestHandler.CreateComment)
	requests.Put("/:id/comments/:eventId", oplog("request", "comment"), requestHandler.UpdateComment)
	requests.Delete("/:id/comments/:eventId", oplog("request", "comment"), requestHandler.DeleteComment)

	// ========== 通知 ==========
	notifications := authed.Group("/notifications")
	notifications.Post("/list", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
}
