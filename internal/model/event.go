package model

import (
	"gorm.io/datatypes"
)

// 时间线条目类型
const (
	EventTypeLog     = "L" // 动作日志
	EventTypeComment = "C" // 评论
)

// SystemUserID 系统身份，内部流程产生的时间线条目以此记账
const SystemUserID uint = 0

// RequestEvent 请求时间线条目
// 日志载荷为 {event}，评论载荷为 {content, base_content_object, format}
type RequestEvent struct {
	BaseModel
	RequestID uint              `gorm:"index;not null" json:"requestId"`
	Type      string            `gorm:"size:1;not null" json:"type"`
	Payload   datatypes.JSONMap `json:"payload"`
	CreatedBy uint              `gorm:"index" json:"createdBy"` // 0 表示系统身份
	Revision  int               `gorm:"default:0" json:"revision"`
}

// TableName 表名
func (RequestEvent) TableName() string {
	return "rdm_request_event"
}

// IsComment 是否为评论条目
func (e *RequestEvent) IsComment() bool {
	return e.Type == EventTypeComment
}

// IsSystemComment 是否为系统身份产生的评论
func (e *RequestEvent) IsSystemComment() bool {
	return e.Type == EventTypeComment && e.CreatedBy == SystemUserID
}

// LoggedAction 日志条目记录的动作，非日志条目返回空串
func (e *RequestEvent) LoggedAction() string {
	if e.Type != EventTypeLog || e.Payload == nil {
		return ""
	}
	if v, ok := e.Payload["event"].(string); ok {
		return v
	}
	return ""
}
