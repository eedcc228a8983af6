package service

import (
	"errors"

	"rdm/curations/common/logger"
	"rdm/curations/internal/config"
	"rdm/curations/internal/diff"
	"rdm/curations/internal/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordService 记录服务，草稿保存与发布挂接策展流程
type RecordService struct {
	db        *gorm.DB
	requests  *CurationRequestService
	events    *RequestEventService
	curations config.CurationsConfig
}

// NewRecordService 创建记录服务
func NewRecordService(db *gorm.DB, requests *CurationRequestService, events *RequestEventService, curations config.CurationsConfig) *RecordService {
	return &RecordService{db: db, requests: requests, events: events, curations: curations}
}

// CreateRecordRequest 创建草稿请求
type CreateRecordRequest struct {
	Title    string         `json:"title"`
	Metadata map[string]any `json:"metadata"`
}

// CreateDraft 创建一条新记录的工作草稿
func (s *RecordService) CreateDraft(userID uint, req *CreateRecordRequest) (*model.Record, error) {
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	title := req.Title
	if title == "" {
		title = metadataTitle(metadata)
	} else {
		metadata["title"] = title
	}

	record := &model.Record{
		PID:      uuid.NewString(),
		Title:    title,
		Metadata: datatypes.JSONMap(metadata),
		OwnerID:  userID,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetByPID 按对外标识取记录
func (s *RecordService) GetByPID(pid string) (*model.Record, error) {
	var record model.Record
	if err := s.db.Where("pid = ?", pid).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetPublished 已发布的记录
func (s *RecordService) GetPublished(pid string) (*model.Record, error) {
	record, err := s.GetByPID(pid)
	if err != nil {
		return nil, err
	}
	if !record.IsPublished {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// GetDraft 记录的工作草稿，仅所有者与系统身份可见
func (s *RecordService) GetDraft(userID uint, pid string) (*model.Record, error) {
	record, err := s.GetByPID(pid)
	if err != nil {
		return nil, err
	}
	if userID != model.SystemUserID && userID != record.OwnerID {
		return nil, ErrActionPermissionDenied
	}
	return record, nil
}

// UpdateDraftRequest 保存草稿请求
type UpdateDraftRequest struct {
	Metadata map[string]any `json:"metadata"`
}

// UpdateDraft 保存工作草稿
// 已发布记录在允许直接修订时跳过策展挂钩；没有策展请求时保存成功并附带提示；
// 标题变化同步请求标题；按请求状态维护差异评论；已关闭的请求在草稿出现新内容时
// 自动重新进入评审。提示永远不会让保存失败。
func (s *RecordService) UpdateDraft(userID uint, pid string, req *UpdateDraftRequest) (*model.Record, []Warning, error) {
	record, err := s.GetByPID(pid)
	if err != nil {
		return nil, nil, err
	}
	if userID != model.SystemUserID && userID != record.OwnerID {
		return nil, nil, ErrActionPermissionDenied
	}

	data := req.Metadata
	if data == nil {
		data = map[string]any{}
	}

	if record.IsPublished && s.curations.AllowPublishingEdits {
		if err := s.saveDraft(record, data); err != nil {
			return nil, nil, err
		}
		return record, nil, nil
	}

	request, err := s.requests.GetReview(record.ID)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if request == nil {
		if err := s.saveDraft(record, data); err != nil {
			return nil, nil, err
		}
		return record, append(warnings, warnMissingRequest), nil
	}

	// 标题变化以系统身份同步请求标题
	newTitle := metadataTitle(data)
	if newTitle != record.Title {
		if err := s.requests.RetitleForRecord(request, newTitle, record.PID); err != nil {
			logger.L().Warn("同步请求标题失败",
				zap.Uint("requestId", request.ID),
				zap.Error(err))
		}
	}

	entries := diff.Compute(record.Metadata, data)
	processor := diff.NewProcessor(diff.DefaultFactories()).MapEntries(entries)

	switch {
	case request.IsOpen && (request.Status == model.RequestStatusResubmitted ||
		request.Status == model.RequestStatusCritiqued ||
		request.Status == model.RequestStatusReview):
		if warning := NewCommentProcessor(s.events, processor).Process(request); warning != nil {
			warnings = append(warnings, *warning)
		}
	case request.IsOpen:
		// 其余开放状态只保存，评审最终会看到最新内容
	case len(entries) > 0:
		// 请求已关闭但草稿有了新内容，重新进入评审
		if _, err := s.requests.ExecuteAction(userID, request.ID, ActionResubmit); err != nil {
			return nil, nil, err
		}
	}

	if err := s.saveDraft(record, data); err != nil {
		return nil, nil, err
	}
	return record, warnings, nil
}

// saveDraft 落盘草稿内容并递增草稿修订号
func (s *RecordService) saveDraft(record *model.Record, data map[string]any) error {
	title := metadataTitle(data)
	updates := map[string]any{
		"metadata": datatypes.JSONMap(data),
		"title":    title,
		"revision": record.Revision + 1,
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return err
	}
	record.Metadata = datatypes.JSONMap(data)
	record.Title = title
	record.Revision++
	return nil
}

// Publish 发布草稿
// 首次发布要求策展请求已通过；已发布记录的再次发布在允许直接修订时放行，
// 否则同样要求请求处于已通过状态
func (s *RecordService) Publish(userID uint, pid string) (*model.Record, error) {
	record, err := s.GetByPID(pid)
	if err != nil {
		return nil, err
	}
	if userID != model.SystemUserID && userID != record.OwnerID {
		return nil, ErrActionPermissionDenied
	}

	if !publishGateExempt(record.IsPublished, s.curations.AllowPublishingEdits) {
		request, err := s.requests.GetReview(record.ID)
		if err != nil {
			return nil, err
		}
		if err := checkPublishGate(request); err != nil {
			return nil, err
		}
	}

	published := datatypes.JSONMap{}
	if err := copier.CopyWithOption(&published, &record.Metadata, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"published_metadata": published,
		"is_published":       true,
		"version":            record.Version + 1,
		"revision":           0,
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	record.PublishedMetadata = published
	record.IsPublished = true
	record.Version++
	record.Revision = 0
	return record, nil
}

// DeleteDraft 删除工作草稿
// 从未发布的记录连同请求一并删除；已发布的记录把草稿重置回已发布内容，
// 并取消进行中的请求，请求本身保留复用
func (s *RecordService) DeleteDraft(userID uint, pid string) error {
	record, err := s.GetByPID(pid)
	if err != nil {
		return err
	}
	if userID != model.SystemUserID && userID != record.OwnerID {
		return ErrActionPermissionDenied
	}

	request, err := s.requests.GetReview(record.ID)
	if err != nil {
		return err
	}

	if !record.IsPublished {
		if request != nil {
			if err := s.requests.DeleteRequest(model.SystemUserID, request.ID); err != nil {
				return err
			}
		}
		return s.db.Delete(record).Error
	}

	restored := datatypes.JSONMap{}
	if err := copier.CopyWithOption(&restored, &record.PublishedMetadata, copier.Option{DeepCopy: true}); err != nil {
		return err
	}
	updates := map[string]any{
		"metadata": restored,
		"title":    metadataTitle(restored),
		"revision": 0,
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return err
	}

	if request != nil && request.IsOpen {
		if _, err := s.requests.ExecuteAction(model.SystemUserID, request.ID, ActionCancel); err != nil {
			return err
		}
	}
	return nil
}

// ListRecordsRequest 记录列表查询
type ListRecordsRequest struct {
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
	Keyword     string `json:"keyword"`
	OwnerID     uint   `json:"ownerId"`
	IsPublished *bool  `json:"isPublished"`
}

// ListRecords 记录列表
func (s *RecordService) ListRecords(req *ListRecordsRequest) ([]model.Record, int64, error) {
	var records []model.Record
	var total int64

	query := s.db.Model(&model.Record{})

	if req.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+req.Keyword+"%")
	}
	if req.OwnerID > 0 {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.IsPublished != nil {
		query = query.Where("is_published = ?", *req.IsPublished)
	}

	query.Count(&total)

	if req.Page > 0 && req.PageSize > 0 {
		offset := (req.Page - 1) * req.PageSize
		query = query.Offset(offset).Limit(req.PageSize)
	}

	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// publishGateExempt 已发布记录在允许直接修订时免于策展闸口
func publishGateExempt(isPublished, allowPublishingEdits bool) bool {
	return isPublished && allowPublishingEdits
}

// checkPublishGate 发布前的策展闸口，要求请求存在且已通过
func checkPublishGate(request *model.CurationRequest) error {
	if request == nil {
		return ErrCurationRequestMissing
	}
	if request.Status != model.RequestStatusAccepted {
		return ErrCurationRequestNotAccepted
	}
	return nil
}

// metadataTitle 元数据中的标题
func metadataTitle(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata["title"].(string); ok {
		return v
	}
	return ""
}
