package model

import (
	"rdm/curations/common/types"
)

// RequestTypeCuration 审核请求类型标识
const RequestTypeCuration = "rdm-curation"

// 请求状态
const (
	RequestStatusCreated     = "created"
	RequestStatusSubmitted   = "submitted"
	RequestStatusReview      = "review"
	RequestStatusCritiqued   = "critiqued"
	RequestStatusResubmitted = "resubmitted"
	RequestStatusAccepted    = "accepted"
	RequestStatusDeclined    = "declined"
	RequestStatusCancelled   = "cancelled"
	RequestStatusExpired     = "expired"
)

// OpenStatuses 处于开放态的请求状态
var OpenStatuses = []string{
	RequestStatusSubmitted,
	RequestStatusReview,
	RequestStatusCritiqued,
	RequestStatusResubmitted,
}

// IsOpenStatus 判断状态是否为开放态
func IsOpenStatus(status string) bool {
	for _, s := range OpenStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CurationRequest 审核请求模型，每条记录的整个生命周期只有一条请求，跨多轮评审复用
type CurationRequest struct {
	BaseModel
	Type         string          `gorm:"size:50;not null;default:rdm-curation" json:"type"`
	Title        string          `gorm:"size:255" json:"title"`
	Description  string          `gorm:"size:2000" json:"description"`
	RecordID     uint            `gorm:"uniqueIndex;not null" json:"recordId"`
	Status       string          `gorm:"size:20;index;not null" json:"status"`
	IsOpen       bool            `gorm:"index" json:"isOpen"`
	ReceiverRole string          `gorm:"size:50;not null" json:"receiverRole"` // 接收请求的审核角色编码
	CreatedBy    uint            `gorm:"index" json:"createdBy"`
	LastActionAt *types.DateTime `json:"lastActionAt"`
}

// TableName 表名
func (CurationRequest) TableName() string {
	return "rdm_curation_request"
}
