package handler

import (
	"rdm/curations/common/response"
	"rdm/curations/internal/auth"
	"rdm/curations/internal/middleware"
	"rdm/curations/internal/service"
	"rdm/curations/internal/tasks"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler 策展请求处理器
type RequestHandler struct {
	requests *service.CurationRequestService
	records  *service.RecordService
	events   *service.RequestEventService
	pool     *tasks.Pool
	perm     *auth.PermissionService
}

// NewRequestHandler 创建策展请求处理器
func NewRequestHandler(
	requests *service.CurationRequestService,
	records *service.RecordService,
	events *service.RequestEventService,
	pool *tasks.Pool,
	perm *auth.PermissionService,
) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		records:  records,
		events:   events,
		pool:     pool,
		perm:     perm,
	}
}

// CreateRequestRequest 创建策展请求参数
type CreateRequestRequest struct {
	RecordPID string `json:"recordPid"`
	Async     bool   `json:"async"` // 异步创建，立即返回
}

// Create 为记录创建策展请求并提交
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	if req.RecordPID == "" {
		return response.Error(c, "记录PID不能为空")
	}

	userID := middleware.GetCurrentUserID(c)

	if req.Async {
		if err := h.pool.SubmitCurationRequest(userID, req.RecordPID); err != nil {
			return response.Error(c, "任务提交失败")
		}
		return response.SuccessWithMessage(c, "策展请求创建中", nil)
	}

	record, err := h.records.GetByPID(req.RecordPID)
	if err != nil {
		return respondError(c, err)
	}

	request, err := h.requests.Create(userID, record)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, request)
}

// scopeToUser 非策展人只能查询自己创建的请求
func (h *RequestHandler) scopeToUser(c *fiber.Ctx, req *service.ListRequestsRequest) error {
	userID := middleware.GetCurrentUserID(c)
	isCurator, err := h.perm.IsCurator(userID)
	if err != nil {
		return err
	}
	if !isCurator {
		req.CreatedBy = userID
	}
	return nil
}

// List 请求列表，策展人可见全部，其他用户只看自己创建的
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var req service.ListRequestsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	normalizePage(&req.Page, &req.PageSize)

	if err := h.scopeToUser(c, &req); err != nil {
		return response.Error(c, "角色验证失败")
	}

	requests, total, err := h.requests.ListRequests(&req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, requests, total, req.Page, req.PageSize)
}

// Search GET 方式的请求搜索，条件走查询串
func (h *RequestHandler) Search(c *fiber.Ctx) error {
	req := service.ListRequestsRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 10),
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
	}

	if err := h.scopeToUser(c, &req); err != nil {
		return response.Error(c, "角色验证失败")
	}

	requests, total, err := h.requests.ListRequests(&req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, requests, total, req.Page, req.PageSize)
}

// Open 待处理请求总览，策展工作台用，路由上挂策展角色校验
func (h *RequestHandler) Open(c *fiber.Ctx) error {
	isOpen := true
	req := service.ListRequestsRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 10),
		Status:   c.Query("status"),
		IsOpen:   &isOpen,
	}

	requests, total, err := h.requests.ListRequests(&req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, requests, total, req.Page, req.PageSize)
}

// Get 请求详情
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	request, err := h.requests.GetRequest(id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, request)
}

// Review 按记录查询当前策展请求
func (h *RequestHandler) Review(c *fiber.Ctx) error {
	record, err := h.records.GetByPID(c.Params("pid"))
	if err != nil {
		return respondError(c, err)
	}

	request, err := h.requests.GetReview(record.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, request)
}

// Update 更新请求标题与描述
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	var req service.UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	req.ID = id

	userID := middleware.GetCurrentUserID(c)
	if err := h.requests.UpdateRequest(userID, &req); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, nil)
}

// Delete 删除请求，记录已发布时禁止
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.requests.DeleteRequest(userID, id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, nil)
}

// Action 执行策展动作
func (h *RequestHandler) Action(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	action := c.Params("action")
	if !service.IsAction(action) {
		return response.Error(c, "未知的策展动作")
	}

	userID := middleware.GetCurrentUserID(c)
	request, err := h.requests.ExecuteAction(userID, id, action)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, request)
}

// Timeline 请求时间线，动作日志与评论按时间正序
func (h *RequestHandler) Timeline(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	req := service.TimelineRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}

	events, total, err := h.events.Timeline(id, &req)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Page(c, events, total, req.Page, req.PageSize)
}

// CreateComment 在请求时间线上发表评论
func (h *RequestHandler) CreateComment(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	var req service.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	userID := middleware.GetCurrentUserID(c)
	event, err := h.events.CreateComment(userID, id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, event)
}

// UpdateComment 修改评论，仅评论作者可改
func (h *RequestHandler) UpdateComment(c *fiber.Ctx) error {
	eventID, err := uintParam(c, "eventId")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	var req service.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	userID := middleware.GetCurrentUserID(c)
	event, err := h.events.UpdateComment(userID, eventID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, event)
}

// DeleteComment 删除评论，仅评论作者可删
func (h *RequestHandler) DeleteComment(c *fiber.Ctx) error {
	eventID, err := uintParam(c, "eventId")
	if err != nil {
		return response.Error(c, "参数错误")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.events.DeleteComment(userID, eventID); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, nil)
}
