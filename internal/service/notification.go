package service

import (
	commonRedis "rdm/curations/common/redis"
	"rdm/curations/common/utils"
	"rdm/curations/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotifyChannel 审核动作的实时广播频道
const NotifyChannel = "curations:events"

// NotificationService 站内通知服务
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService 创建站内通知服务
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Dispatch 按动作派发通知
// submit/resubmit 通知全部审核角色成员，review/critique/accept/decline 通知记录所有者，
// cancel/expire 通知双方，动作执行者本人不收通知
func (s *NotificationService) Dispatch(request *model.CurationRequest, record *model.Record, action string, actorID uint) error {
	recipients, err := s.recipients(request, record, action)
	if err != nil {
		return err
	}

	payload := datatypes.JSONMap{
		"action":    action,
		"status":    request.Status,
		"requestId": request.ID,
		"recordPid": record.PID,
		"title":     request.Title,
		"actor":     actorID,
	}

	for _, userID := range recipients {
		if userID == actorID {
			continue
		}
		notification := &model.Notification{
			UserID:    userID,
			RequestID: request.ID,
			Action:    action,
			Payload:   payload,
		}
		if err := s.db.Create(notification).Error; err != nil {
			return err
		}
	}

	utils.SafeGo(func() { s.publish(payload) })
	return nil
}

// recipients 计算动作的通知对象
func (s *NotificationService) recipients(request *model.CurationRequest, record *model.Record, action string) ([]uint, error) {
	curators, err := s.roleMemberIDs(request.ReceiverRole)
	if err != nil {
		return nil, err
	}
	return fanOutTargets(action, curators, record.OwnerID), nil
}

// fanOutTargets 动作的通知对象规则
// submit/resubmit 通知审核方，review/critique/accept/decline 通知记录所有者，
// cancel/expire 通知双方
func fanOutTargets(action string, curators []uint, ownerID uint) []uint {
	switch action {
	case ActionSubmit, ActionResubmit:
		return curators
	case ActionReview, ActionCritique, ActionAccept, ActionDecline:
		return []uint{ownerID}
	case ActionCancel, ActionExpire:
		return utils.SliceUnique(append(curators, ownerID))
	default:
		return nil
	}
}

// roleMemberIDs 启用角色下的全部启用用户
func (s *NotificationService) roleMemberIDs(roleCode string) ([]uint, error) {
	var roleIDs []uint
	err := s.db.Model(&model.Role{}).
		Where("code = ? AND status = 1", roleCode).
		Pluck("id", &roleIDs).Error
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}

	var userIDs []uint
	err = s.db.Model(&model.UserRole{}).
		Where("role_id IN ?", roleIDs).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	var activeIDs []uint
	err = s.db.Model(&model.User{}).
		Where("id IN ? AND status = 1", userIDs).
		Pluck("id", &activeIDs).Error
	if err != nil {
		return nil, err
	}
	return activeIDs, nil
}

// publish Redis配置可用时广播动作事件
func (s *NotificationService) publish(payload datatypes.JSONMap) {
	if commonRedis.GetClient() == nil {
		return
	}
	message, err := utils.MarshalString(map[string]any(payload))
	if err != nil {
		return
	}
	_ = commonRedis.Publish(NotifyChannel, message)
}

// ListNotificationsRequest 通知列表请求
type ListNotificationsRequest struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	UnreadOnly bool `json:"unreadOnly"`
}

// ListNotifications 我的通知列表，新通知在前
func (s *NotificationService) ListNotifications(userID uint, req *ListNotificationsRequest) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	query := s.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if req.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	query.Count(&total)

	if req.Page > 0 && req.PageSize > 0 {
		offset := (req.Page - 1) * req.PageSize
		query = query.Offset(offset).Limit(req.PageSize)
	}

	if err := query.Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// UnreadCount 未读通知数
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 标记单条通知已读
func (s *NotificationService) MarkRead(userID, id uint) error {
	res := s.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 标记全部通知已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
