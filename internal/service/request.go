package service

import (
	"errors"
	"fmt"
	"time"

	"rdm/curations/common/logger"
	"rdm/curations/common/types"
	"rdm/curations/internal/auth"
	"rdm/curations/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CurationRequestService 策展请求服务
type CurationRequestService struct {
	db     *gorm.DB
	perm   *auth.PermissionService
	events *RequestEventService
	notify *NotificationService
}

// NewCurationRequestService 创建策展请求服务
func NewCurationRequestService(db *gorm.DB, perm *auth.PermissionService, events *RequestEventService, notify *NotificationService) *CurationRequestService {
	return &CurationRequestService{db: db, perm: perm, events: events, notify: notify}
}

// RequestTitle 请求标题，记录无标题时回退到PID
func RequestTitle(recordTitle, pid string) string {
	if recordTitle == "" {
		recordTitle = pid
	}
	return fmt.Sprintf("RDM Curation: %s", recordTitle)
}

// Create 为记录创建策展请求并立即提交
// 每条记录只保留一条请求：已有开放请求时拒绝，已关闭的请求复用并重新提交
func (s *CurationRequestService) Create(userID uint, record *model.Record) (*model.CurationRequest, error) {
	existing, err := s.GetReview(record.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsOpen {
			return nil, ErrOpenRequestExists
		}
		return s.ExecuteAction(userID, existing.ID, ActionResubmit)
	}

	request := &model.CurationRequest{
		Type:         model.RequestTypeCuration,
		Title:        RequestTitle(record.Title, record.PID),
		RecordID:     record.ID,
		Status:       model.RequestStatusCreated,
		IsOpen:       false,
		ReceiverRole: s.perm.ModerationRole(),
		CreatedBy:    userID,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, err
	}

	return s.ExecuteAction(userID, request.ID, ActionSubmit)
}

// GetReview 记录的策展请求，不存在时返回nil
func (s *CurationRequestService) GetReview(recordID uint) (*model.CurationRequest, error) {
	var request model.CurationRequest
	err := s.db.Where("record_id = ?", recordID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// AcceptedRecord 记录的策展请求是否已通过
func (s *CurationRequestService) AcceptedRecord(recordID uint) (bool, error) {
	request, err := s.GetReview(recordID)
	if err != nil {
		return false, err
	}
	return request != nil && request.Status == model.RequestStatusAccepted, nil
}

// GetRequest 请求详情
func (s *CurationRequestService) GetRequest(id uint) (*model.CurationRequest, error) {
	var request model.CurationRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ExecuteAction 执行策展动作
// 校验状态迁移与执行者类别，落库后追加动作日志并派发通知
func (s *CurationRequestService) ExecuteAction(userID, requestID uint, action string) (*model.CurationRequest, error) {
	request, err := s.GetRequest(requestID)
	if err != nil {
		return nil, err
	}

	record, err := s.recordOf(request)
	if err != nil {
		return nil, err
	}

	next, err := NextStatus(action, request.Status)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canExecute(userID, request, record, action)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrActionPermissionDenied
	}

	now := types.NewDateTime(time.Now())
	updates := map[string]any{
		"status":         next,
		"is_open":        model.IsOpenStatus(next),
		"last_action_at": now,
	}
	if err := s.db.Model(request).Updates(updates).Error; err != nil {
		return nil, err
	}
	request.Status = next
	request.IsOpen = model.IsOpenStatus(next)
	request.LastActionAt = &now

	// 时间线记录动作后的新状态
	if _, err := s.events.AppendLog(request.ID, next); err != nil {
		logger.L().Warn("追加动作日志失败",
			zap.Uint("requestId", request.ID),
			zap.String("action", action),
			zap.Error(err))
	}

	if err := s.notify.Dispatch(request, record, action, userID); err != nil {
		logger.L().Warn("派发动作通知失败",
			zap.Uint("requestId", request.ID),
			zap.String("action", action),
			zap.Error(err))
	}

	return request, nil
}

// canExecute 判定执行者是否符合动作的类别要求
func (s *CurationRequestService) canExecute(userID uint, request *model.CurationRequest, record *model.Record, action string) (bool, error) {
	actors, err := AllowedActors(action)
	if err != nil {
		return false, err
	}

	for _, class := range actors {
		switch class {
		case ActorSystem:
			if userID == model.SystemUserID {
				return true, nil
			}
		case ActorOwner:
			if userID == request.CreatedBy || userID == record.OwnerID {
				return true, nil
			}
		case ActorCurator:
			isCurator, err := s.perm.IsCurator(userID)
			if err != nil {
				return false, err
			}
			if isCurator {
				return true, nil
			}
		}
	}
	return false, nil
}

// recordOf 请求关联的记录
func (s *CurationRequestService) recordOf(request *model.CurationRequest) (*model.Record, error) {
	var record model.Record
	if err := s.db.First(&record, request.RecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateRequestRequest 更新请求
type UpdateRequestRequest struct {
	ID          uint   `json:"id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateRequest 更新请求标题与描述
func (s *CurationRequestService) UpdateRequest(userID uint, req *UpdateRequestRequest) error {
	request, err := s.GetRequest(req.ID)
	if err != nil {
		return err
	}

	if userID != model.SystemUserID && userID != request.CreatedBy {
		isCurator, err := s.perm.IsCurator(userID)
		if err != nil {
			return err
		}
		if !isCurator {
			return ErrActionPermissionDenied
		}
	}

	updates := map[string]any{
		"title":       req.Title,
		"description": req.Description,
	}
	return s.db.Model(request).Updates(updates).Error
}

// RetitleForRecord 记录改名后同步请求标题，以系统身份执行
func (s *CurationRequestService) RetitleForRecord(request *model.CurationRequest, newTitle, pid string) error {
	return s.db.Model(request).
		Update("title", RequestTitle(newTitle, pid)).Error
}

// DeleteRequest 删除请求，仅限从未发布过的记录
func (s *CurationRequestService) DeleteRequest(userID, requestID uint) error {
	request, err := s.GetRequest(requestID)
	if err != nil {
		return err
	}

	record, err := s.recordOf(request)
	if err != nil {
		return err
	}
	if record.IsPublished {
		return ErrRequestDeleteGuarded
	}

	if userID != model.SystemUserID && userID != request.CreatedBy {
		isCurator, err := s.perm.IsCurator(userID)
		if err != nil {
			return err
		}
		if !isCurator {
			return ErrActionPermissionDenied
		}
	}

	return s.db.Delete(request).Error
}

// ListRequestsRequest 请求列表查询
type ListRequestsRequest struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	Status       string `json:"status"`
	IsOpen       *bool  `json:"isOpen"`
	RecordID     uint   `json:"recordId"`
	ReceiverRole string `json:"receiverRole"`
	CreatedBy    uint   `json:"createdBy"`
	Keyword      string `json:"keyword"`
}

// ListRequests 请求列表
func (s *CurationRequestService) ListRequests(req *ListRequestsRequest) ([]model.CurationRequest, int64, error) {
	var requests []model.CurationRequest
	var total int64

	query := s.db.Model(&model.CurationRequest{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.IsOpen != nil {
		query = query.Where("is_open = ?", *req.IsOpen)
	}
	if req.RecordID > 0 {
		query = query.Where("record_id = ?", req.RecordID)
	}
	if req.ReceiverRole != "" {
		query = query.Where("receiver_role = ?", req.ReceiverRole)
	}
	if req.CreatedBy > 0 {
		query = query.Where("created_by = ?", req.CreatedBy)
	}
	if req.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+req.Keyword+"%")
	}

	query.Count(&total)

	if req.Page > 0 && req.PageSize > 0 {
		offset := (req.Page - 1) * req.PageSize
		query = query.Offset(offset).Limit(req.PageSize)
	}

	if err := query.Order("id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ExpireStale 过期长时间无动作的开放请求，返回过期的请求ID
func (s *CurationRequestService) ExpireStale(before time.Time) ([]uint, error) {
	var stale []model.CurationRequest
	err := s.db.Where("is_open = ?", true).
		Where("(last_action_at IS NOT NULL AND last_action_at < ?) OR (last_action_at IS NULL AND updated_at < ?)", before, before).
		Find(&stale).Error
	if err != nil {
		return nil, err
	}

	var expired []uint
	for _, request := range stale {
		if _, err := s.ExecuteAction(model.SystemUserID, request.ID, ActionExpire); err != nil {
			logger.L().Warn("过期请求失败",
				zap.Uint("requestId", request.ID),
				zap.Error(err))
			continue
		}
		expired = append(expired, request.ID)
	}
	return expired, nil
}
