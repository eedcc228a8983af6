package model

import (
	"gorm.io/datatypes"
)

// 内置角色编码
const (
	RoleCodeAdmin   = "admin"
	RoleCodeCurator = "curator"
)

// Role 角色模型
type Role struct {
	BaseModel
	Name        string                      `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Code        string                      `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Sort        int                         `gorm:"default:0" json:"sort"`
	Status      int8                        `gorm:"default:1" json:"status"` // 0:禁用 1:启用
	Remark      string                      `gorm:"size:500" json:"remark"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"` // 权限标识列表，支持通配符
}

// TableName 表名
func (Role) TableName() string {
	return "sys_role"
}
