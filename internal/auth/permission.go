package auth

import (
	"rdm/curations/internal/model"

	"gorm.io/gorm"
)

// PermissionService 权限服务
type PermissionService struct {
	db             *gorm.DB
	moderationRole string
}

// NewPermissionService 创建权限服务
func NewPermissionService(db *gorm.DB, moderationRole string) *PermissionService {
	if moderationRole == "" {
		moderationRole = model.RoleCodeCurator
	}
	return &PermissionService{db: db, moderationRole: moderationRole}
}

// ModerationRole 当前策展角色编码
func (s *PermissionService) ModerationRole() string {
	return s.moderationRole
}

// GetUserRoles 获取用户角色列表
func (s *PermissionService) GetUserRoles(userID uint) ([]string, error) {
	var roles []model.Role
	err := s.db.Model(&model.User{BaseModel: model.BaseModel{ID: userID}}).
		Association("Roles").
		Find(&roles)
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(roles))
	for i, role := range roles {
		codes[i] = role.Code
	}
	return codes, nil
}

// GetUserPermissions 获取用户权限列表
// 汇总用户所有启用角色携带的权限标识并去重
func (s *PermissionService) GetUserPermissions(userID uint) ([]string, error) {
	var permissions []string

	var roleIDs []uint
	err := s.db.Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}

	if len(roleIDs) == 0 {
		return permissions, nil
	}

	var roles []model.Role
	err = s.db.Model(&model.Role{}).
		Where("id IN ? AND status = 1", roleIDs).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, role := range roles {
		for _, perm := range role.Permissions {
			if perm == "" || seen[perm] {
				continue
			}
			seen[perm] = true
			permissions = append(permissions, perm)
		}
	}
	return permissions, nil
}

// HasRole 判断用户是否拥有角色
func (s *PermissionService) HasRole(userID uint, roleCode string) (bool, error) {
	roles, err := s.GetUserRoles(userID)
	if err != nil {
		return false, err
	}

	for _, role := range roles {
		if role == roleCode {
			return true, nil
		}
	}
	return false, nil
}

// HasPermission 判断用户是否拥有权限
func (s *PermissionService) HasPermission(userID uint, permissionCode string) (bool, error) {
	permissions, err := s.GetUserPermissions(userID)
	if err != nil {
		return false, err
	}

	for _, perm := range permissions {
		if perm == permissionCode || matchWildcard(perm, permissionCode) {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyRole 判断用户是否拥有任一角色
func (s *PermissionService) HasAnyRole(userID uint, roleCodes ...string) (bool, error) {
	roles, err := s.GetUserRoles(userID)
	if err != nil {
		return false, err
	}

	roleMap := make(map[string]bool)
	for _, role := range roles {
		roleMap[role] = true
	}

	for _, code := range roleCodes {
		if roleMap[code] {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyPermission 判断用户是否拥有任一权限
func (s *PermissionService) HasAnyPermission(userID uint, permissionCodes ...string) (bool, error) {
	permissions, err := s.GetUserPermissions(userID)
	if err != nil {
		return false, err
	}

	for _, perm := range permissions {
		for _, code := range permissionCodes {
			if perm == code || matchWildcard(perm, code) {
				return true, nil
			}
		}
	}
	return false, nil
}

// IsCurator 判断用户是否具备策展资格
// 系统身份视同策展人，管理员同样放行
func (s *PermissionService) IsCurator(userID uint) (bool, error) {
	if userID == model.SystemUserID {
		return true, nil
	}
	return s.HasAnyRole(userID, s.moderationRole, model.RoleCodeAdmin)
}

// matchWildcard 通配符匹配
// 支持 * 匹配任意字符
// 如: record:* 匹配 record:read, record:update, record:delete
// 如: curation:*:read 匹配 curation:request:read, curation:event:read
func matchWildcard(pattern, target string) bool {
	if pattern == "*" {
		return true
	}

	pLen, tLen := len(pattern), len(target)
	pIdx, tIdx := 0, 0
	starIdx, matchIdx := -1, 0

	for tIdx < tLen {
		if pIdx < pLen && (pattern[pIdx] == target[tIdx] || pattern[pIdx] == '?') {
			pIdx++
			tIdx++
		} else if pIdx < pLen && pattern[pIdx] == '*' {
			starIdx = pIdx
			matchIdx = tIdx
			pIdx++
		} else if starIdx != -1 {
			pIdx = starIdx + 1
			matchIdx++
			tIdx = matchIdx
		} else {
			return false
		}
	}

	for pIdx < pLen && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == pLen
}
