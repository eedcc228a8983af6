package model

import (
	"gorm.io/datatypes"
)

// Notification 站内通知，审核动作触发后派发给相关方
type Notification struct {
	BaseModel
	UserID    uint              `gorm:"index;not null" json:"userId"`
	RequestID uint              `gorm:"index;not null" json:"requestId"`
	Action    string            `gorm:"size:20;not null" json:"action"`
	Payload   datatypes.JSONMap `json:"payload"`
	IsRead    bool              `gorm:"default:false;index" json:"isRead"`
}

// TableName 表名
func (Notification) TableName() string {
	return "rdm_notification"
}
