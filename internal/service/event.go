package service

import (
	"errors"
	"strings"

	"rdm/curations/internal/model"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 评论载荷字段
const (
	PayloadKeyContent           = "content"
	PayloadKeyBaseContentObject = "base_content_object"
	PayloadKeyFormat            = "format"

	CommentFormatHTML = "html"
)

// ugcPolicy 评论内容的HTML白名单
var ugcPolicy = bluemonday.UGCPolicy()

// RequestEventService 请求时间线服务
type RequestEventService struct {
	db *gorm.DB
}

// NewRequestEventService 创建请求时间线服务
func NewRequestEventService(db *gorm.DB) *RequestEventService {
	return &RequestEventService{db: db}
}

// AppendLog 以系统身份追加一条动作日志条目
func (s *RequestEventService) AppendLog(requestID uint, action string) (*model.RequestEvent, error) {
	event := &model.RequestEvent{
		RequestID: requestID,
		Type:      model.EventTypeLog,
		Payload:   datatypes.JSONMap{"event": action},
		CreatedBy: model.SystemUserID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// AllEvents 按时间顺序返回请求的完整时间线
func (s *RequestEventService) AllEvents(requestID uint) ([]model.RequestEvent, error) {
	var events []model.RequestEvent
	err := s.db.Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// TimelineRequest 时间线分页请求
type TimelineRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Timeline 分页返回请求的时间线
func (s *RequestEventService) Timeline(requestID uint, req *TimelineRequest) ([]model.RequestEvent, int64, error) {
	var events []model.RequestEvent
	var total int64

	query := s.db.Model(&model.RequestEvent{}).Where("request_id = ?", requestID)
	query.Count(&total)

	if req.Page > 0 && req.PageSize > 0 {
		offset := (req.Page - 1) * req.PageSize
		query = query.Offset(offset).Limit(req.PageSize)
	}

	if err := query.Order("id ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Content           string `json:"content" validate:"required"`
	BaseContentObject string `json:"baseContentObject"`
	Format            string `json:"format"`
}

// CreateComment 创建评论条目，内容经白名单过滤且不允许为空
func (s *RequestEventService) CreateComment(userID, requestID uint, req *CreateCommentRequest) (*model.RequestEvent, error) {
	var count int64
	s.db.Model(&model.CurationRequest{}).Where("id = ?", requestID).Count(&count)
	if count == 0 {
		return nil, ErrRequestNotFound
	}

	content, format, err := cleanCommentPayload(req.Content, req.Format)
	if err != nil {
		return nil, err
	}

	event := &model.RequestEvent{
		RequestID: requestID,
		Type:      model.EventTypeComment,
		Payload: datatypes.JSONMap{
			PayloadKeyContent:           content,
			PayloadKeyBaseContentObject: req.BaseContentObject,
			PayloadKeyFormat:            format,
		},
		CreatedBy: userID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateCommentRequest 更新评论请求
// Revision 不为空时做乐观锁校验
type UpdateCommentRequest struct {
	Content           string `json:"content" validate:"required"`
	BaseContentObject string `json:"baseContentObject"`
	Format            string `json:"format"`
	Revision          *int   `json:"revision"`
}

// UpdateComment 更新评论条目，仅评论可以被修改，载荷三个字段整体替换
func (s *RequestEventService) UpdateComment(userID, eventID uint, req *UpdateCommentRequest) (*model.RequestEvent, error) {
	var event model.RequestEvent
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !event.IsComment() {
		return nil, ErrNotComment
	}
	if userID != model.SystemUserID && userID != event.CreatedBy {
		return nil, ErrActionPermissionDenied
	}
	if req.Revision != nil && *req.Revision != event.Revision {
		return nil, ErrCommentRevisionConflict
	}

	content, format, err := cleanCommentPayload(req.Content, req.Format)
	if err != nil {
		return nil, err
	}

	payload := datatypes.JSONMap{
		PayloadKeyContent:           content,
		PayloadKeyBaseContentObject: req.BaseContentObject,
		PayloadKeyFormat:            format,
	}

	// 以当前修订号为条件更新，避免并发写互相覆盖
	res := s.db.Model(&model.RequestEvent{}).
		Where("id = ? AND revision = ?", event.ID, event.Revision).
		Updates(map[string]any{
			"payload":  payload,
			"revision": event.Revision + 1,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCommentRevisionConflict
	}

	event.Payload = payload
	event.Revision++
	return &event, nil
}

// DeleteComment 删除评论条目，软删除保留墓碑
func (s *RequestEventService) DeleteComment(userID, eventID uint) error {
	var event model.RequestEvent
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !event.IsComment() {
		return ErrNotComment
	}
	if userID != model.SystemUserID && userID != event.CreatedBy {
		return ErrActionPermissionDenied
	}

	return s.db.Delete(&event).Error
}

// CreateSystemComment 以系统身份创建评论
func (s *RequestEventService) CreateSystemComment(requestID uint, content, baseContentObject string) error {
	_, err := s.CreateComment(model.SystemUserID, requestID, &CreateCommentRequest{
		Content:           content,
		BaseContentObject: baseContentObject,
	})
	return err
}

// UpdateSystemComment 以系统身份更新评论，带修订号校验
func (s *RequestEventService) UpdateSystemComment(eventID uint, revision int, content, baseContentObject string) error {
	_, err := s.UpdateComment(model.SystemUserID, eventID, &UpdateCommentRequest{
		Content:           content,
		BaseContentObject: baseContentObject,
		Revision:          &revision,
	})
	return err
}

// cleanCommentPayload 过滤评论内容并补齐格式
func cleanCommentPayload(content, format string) (string, string, error) {
	cleaned := strings.TrimSpace(ugcPolicy.Sanitize(content))
	if cleaned == "" {
		return "", "", ErrEmptyCommentContent
	}

	if format == "" {
		format = CommentFormatHTML
	}
	if format != CommentFormatHTML {
		return "", "", errors.New("不支持的评论格式")
	}
	return cleaned, format, nil
}
