package model

import (
	"gorm.io/datatypes"
)

// Record 记录模型，持有一份工作草稿和最近一次发布的元数据
type Record struct {
	BaseModel
	PID               string            `gorm:"size:36;uniqueIndex;not null" json:"pid"` // 对外标识
	Title             string            `gorm:"size:255" json:"title"`
	Metadata          datatypes.JSONMap `json:"metadata"` // 草稿元数据
	PublishedMetadata datatypes.JSONMap `json:"publishedMetadata"`
	IsPublished       bool              `gorm:"default:false;index" json:"isPublished"`
	Version           int               `gorm:"default:0" json:"version"`  // 发布版本号
	Revision          int               `gorm:"default:0" json:"revision"` // 草稿修订号
	OwnerID           uint              `gorm:"index;not null" json:"ownerId"`
}

// TableName 表名
func (Record) TableName() string {
	return "rdm_record"
}

// HasDraftChanges 草稿是否与已发布内容不同
func (r *Record) HasDraftChanges() bool {
	if !r.IsPublished {
		return true
	}
	return r.Revision > 0
}
