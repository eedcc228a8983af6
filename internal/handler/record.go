package handler

import (
	"rdm/curations/common/response"
	"rdm/curations/internal/auth"
	"rdm/curations/internal/middleware"
	"rdm/curations/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordHandler 记录处理器
type RecordHandler struct {
	records *service.RecordService
	perm    *auth.PermissionService
}

// NewRecordHandler 创建记录处理器
func NewRecordHandler(records *service.RecordService, perm *auth.PermissionService) *RecordHandler {
	return &RecordHandler{records: records, perm: perm}
}

// Create 创建草稿
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	userID := middleware.GetCurrentUserID(c)
	record, err := h.records.CreateDraft(userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, record)
}

// List 记录列表，非策展人只能看到自己的记录
func (h *RecordHandler) List(c *fiber.Ctx) error {
	var req service.ListRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	normalizePage(&req.Page, &req.PageSize)

	userID := middleware.GetCurrentUserID(c)
	isCurator, err := h.perm.IsCurator(userID)
	if err != nil {
		return response.Error(c, "角色验证失败")
	}
	if !isCurator {
		req.OwnerID = userID
	}

	records, total, err := h.records.ListRecords(&req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, records, total, req.Page, req.PageSize)
}

// Get 已发布记录详情
func (h *RecordHandler) Get(c *fiber.Ctx) error {
	record, err := h.records.GetPublished(c.Params("pid"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, record)
}

// GetDraft 草稿详情，仅记录所有者可见
func (h *RecordHandler) GetDraft(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	record, err := h.records.GetDraft(userID, c.Params("pid"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, record)
}

// UpdateDraft 保存草稿
// 保存总是成功落库，策展评论维护失败以 warnings 附带返回
func (h *RecordHandler) UpdateDraft(c *fiber.Ctx) error {
	var req service.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	userID := middleware.GetCurrentUserID(c)
	record, warnings, err := h.records.UpdateDraft(userID, c.Params("pid"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, fiber.Map{
		"record":   record,
		"warnings": warnings,
	})
}

// Publish 发布记录，要求策展请求已通过
func (h *RecordHandler) Publish(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	record, err := h.records.Publish(userID, c.Params("pid"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, record)
}

// DeleteDraft 删除草稿
// 未发布记录连同策展请求一起删除，已发布记录回退到发布版并取消进行中的请求
func (h *RecordHandler) DeleteDraft(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if err := h.records.DeleteDraft(userID, c.Params("pid")); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, nil)
}
