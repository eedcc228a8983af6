package handler

import (
	"rdm/curations/common/response"
	"rdm/curations/internal/middleware"
	"rdm/curations/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login 登录
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	if req.Username == "" || req.Password == "" {
		return response.Error(c, "用户名和密码不能为空")
	}

	result, err := h.users.Login(&req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return response.Error(c, err.Error())
	}

	return response.Success(c, result)
}

// Logout 登出
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// 公开路由，不经过认证中间件
	token := getTokenFromRequest(c)
	if token == "" {
		// 没有token也返回成功，用户可能已经登出
		return response.Success(c, nil)
	}
	// 尝试登出，即使失败也返回成功
	_ = h.users.Logout(token)
	return response.Success(c, nil)
}

// GetUserInfo 获取当前用户信息
func (h *AuthHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "请先登录")
	}

	user, err := h.users.GetUserInfo(userID)
	if err != nil {
		return response.Error(c, "获取用户信息失败")
	}

	return response.Success(c, user)
}

// getTokenFromRequest 从请求中获取Token
func getTokenFromRequest(c *fiber.Ctx) string {
	// 从Header获取
	token := c.Get("satoken")
	if token != "" {
		return token
	}

	// 从Authorization获取
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			return authHeader[7:]
		}
		return authHeader
	}

	// 从Query获取
	token = c.Query("satoken")
	if token != "" {
		return token
	}

	// 从Cookie获取
	return c.Cookies("satoken")
}
