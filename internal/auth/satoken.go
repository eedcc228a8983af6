package auth

import (
	"fmt"
	"time"

	"rdm/curations/common/logger"
	"rdm/curations/internal/config"

	"github.com/click33/sa-token-go/core"
	"github.com/click33/sa-token-go/storage/memory"
	satokenRedis "github.com/click33/sa-token-go/storage/redis"
	"github.com/click33/sa-token-go/stputil"
	"go.uber.org/zap"
)

var manager *core.Manager

// InitSaToken 初始化SaToken
// Redis配置有效时使用Redis存储，服务重启后token仍然有效；否则降级为内存存储
func InitSaToken(cfg *config.Config) error {
	var storage core.Storage
	var err error

	if cfg.Redis.Enabled() {
		// 构建Redis URL: redis://:password@host:port/db
		var redisURL string
		if cfg.Redis.Password != "" {
			redisURL = fmt.Sprintf("redis://:%s@%s:%d/%d", cfg.Redis.Password, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		} else {
			redisURL = fmt.Sprintf("redis://%s:%d/%d", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		}
		storage, err = satokenRedis.NewStorage(redisURL)
		if err != nil {
			logger.L().Warn("SaToken Redis存储初始化失败，降级使用内存存储", zap.Error(err))
			storage = memory.NewStorage()
		} else {
			logger.L().Info("SaToken使用Redis存储")
		}
	} else {
		logger.L().Info("SaToken使用内存存储，服务重启后token会丢失")
		storage = memory.NewStorage()
	}

	// 使用Builder模式创建Manager
	manager = core.NewBuilder().
		Storage(storage).
		TokenName(cfg.SaToken.TokenName).
		Timeout(cfg.SaToken.Timeout).
		ActiveTimeout(cfg.SaToken.ActiveTimeout).
		IsConcurrent(cfg.SaToken.IsConcurrent).
		IsShare(cfg.SaToken.IsShare).
		MaxLoginCount(cfg.SaToken.MaxLoginCount).
		IsLog(cfg.SaToken.IsLog).
		Build()

	// 设置全局Manager
	stputil.SetManager(manager)

	return nil
}

// GetManager 获取Manager
func GetManager() *core.Manager {
	return manager
}

// Login 登录
func Login(loginId any) (string, error) {
	return stputil.Login(loginId)
}

// LoginWithDevice 指定设备登录
func LoginWithDevice(loginId any, device string) (string, error) {
	return stputil.Login(loginId, device)
}

// Logout 登出
func Logout(loginId any, device ...string) error {
	return stputil.Logout(loginId, device...)
}

// LogoutByToken 根据Token登出
func LogoutByToken(tokenValue string) error {
	return stputil.LogoutByToken(tokenValue)
}

// IsLogin 判断是否登录
func IsLogin(tokenValue string) bool {
	return stputil.IsLogin(tokenValue)
}

// GetLoginId 获取登录ID
func GetLoginId(tokenValue string) (string, error) {
	return stputil.GetLoginID(tokenValue)
}

// GetTokenValue 获取登录ID对应的Token值
func GetTokenValue(loginId any, device ...string) (string, error) {
	return stputil.GetTokenValue(loginId, device...)
}

// CheckLogin 检查登录状态
func CheckLogin(tokenValue string) error {
	return stputil.CheckLogin(tokenValue)
}

// KickOut 踢人下线
func KickOut(loginId any, device ...string) error {
	return stputil.Kickout(loginId, device...)
}

// Disable 禁用账号
func Disable(loginId any, duration int64) error {
	return stputil.Disable(loginId, time.Duration(duration)*time.Second)
}

// IsDisable 判断是否被禁用
func IsDisable(loginId any) bool {
	return stputil.IsDisable(loginId)
}

// Untie 解除禁用
func Untie(loginId any) error {
	return stputil.Untie(loginId)
}
