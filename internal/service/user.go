package service

import (
	"errors"
	"time"

	"rdm/curations/common/types"
	"rdm/curations/common/utils"
	"rdm/curations/internal/auth"
	"rdm/curations/internal/model"

	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	db *gorm.DB
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo *model.User `json:"userInfo"`
}

// Login 用户登录
func (s *UserService) Login(req *LoginRequest, ip, userAgent string) (*LoginResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordLoginLog(0, req.Username, ip, userAgent, 0, "用户名或密码错误")
			return nil, errors.New("用户名或密码错误")
		}
		return nil, err
	}

	if utils.MD5(req.Password) != user.Password {
		s.recordLoginLog(user.ID, req.Username, ip, userAgent, 0, "用户名或密码错误")
		return nil, errors.New("用户名或密码错误")
	}

	if user.Status != 1 {
		s.recordLoginLog(user.ID, req.Username, ip, userAgent, 0, "用户已被禁用")
		return nil, errors.New("用户已被禁用")
	}

	if auth.IsDisable(user.ID) {
		s.recordLoginLog(user.ID, req.Username, ip, userAgent, 0, "账号已被封禁")
		return nil, errors.New("账号已被封禁")
	}

	token, err := auth.Login(user.ID)
	if err != nil {
		s.recordLoginLog(user.ID, req.Username, ip, userAgent, 0, "登录失败")
		return nil, errors.New("登录失败")
	}

	now := time.Now()
	s.db.Model(&user).Updates(map[string]any{
		"last_login_at": types.NewDateTime(now),
		"last_login_ip": ip,
	})

	s.recordLoginLog(user.ID, req.Username, ip, userAgent, 1, "登录成功")

	s.db.Preload("Roles").First(&user, user.ID)

	return &LoginResponse{
		Token:    token,
		UserInfo: &user,
	}, nil
}

// Logout 用户登出
func (s *UserService) Logout(token string) error {
	return auth.LogoutByToken(token)
}

// GetUserInfo 获取用户信息
func (s *UserService) GetUserInfo(userID uint) (*model.User, error) {
	var user model.User
	if err := s.db.Preload("Roles").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// recordLoginLog 记录登录日志
func (s *UserService) recordLoginLog(userID uint, username, ip, userAgent string, status int8, message string) {
	uaInfo := utils.ParseUserAgent(userAgent)
	log := &model.LoginLog{
		UserID:   userID,
		Username: username,
		IP:       ip,
		Browser:  uaInfo.Browser,
		OS:       uaInfo.Os,
		Status:   status,
		Message:  message,
	}
	s.db.Create(log)
}
