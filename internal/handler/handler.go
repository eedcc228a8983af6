// Package handler HTTP 接口层，参数解析与响应包装，业务判断都在 service。
package handler

import (
	"errors"
	"strconv"

	"rdm/curations/common/response"
	"rdm/curations/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError 业务错误转响应，未找到与无权限给独立状态码
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrActionPermissionDenied):
		return response.Forbidden(c, err.Error())
	default:
		return response.Error(c, err.Error())
	}
}

// uintParam 解析路径参数中的ID
func uintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// normalizePage 分页参数缺省值
func normalizePage(page, pageSize *int) {
	if *page <= 0 {
		*page = 1
	}
	if *pageSize <= 0 {
		*pageSize = 10
	}
}
