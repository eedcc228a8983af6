package handler

import (
	"rdm/curations/common/response"
	"rdm/curations/internal/middleware"
	"rdm/curations/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List 当前用户的通知列表
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var req service.ListNotificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	normalizePage(&req.Page, &req.PageSize)

	userID := middleware.GetCurrentUserID(c)
	notifications, total, err := h.notifications.ListNotifications(userID, &req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, notifications, total, req.Page, req.PageSize)
}

// UnreadCount 未读数
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	count, err := h.notifications.UnreadCount(userID)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Success(c, fiber.Map{"count": count})
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.notifications.MarkRead(userID, id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, nil)
}

// MarkAllRead 全部标记已读
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if err := h.notifications.MarkAllRead(userID); err != nil {
		return response.Error(c, "操作失败")
	}

	return response.Success(c, nil)
}
