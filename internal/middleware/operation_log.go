package middleware

import (
	"time"

	"rdm/curations/common/utils"
	"rdm/curations/internal/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OperationLogMiddleware 操作日志中间件
func OperationLogMiddleware(db *gorm.DB, module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		// 请求体在Next后可能被复用，先拷贝
		params := string(c.Body())

		err := c.Next()

		duration := time.Since(startTime).Milliseconds()

		userID := GetCurrentUserID(c)
		username := ""
		if user, ok := c.Locals("user").(*model.User); ok {
			username = user.Username
		}

		status := int8(1)
		errorMsg := ""
		if err != nil {
			status = 0
			errorMsg = err.Error()
		}

		log := &model.OperationLog{
			UserID:    userID,
			Username:  username,
			Module:    module,
			Action:    action,
			Method:    c.Method(),
			Path:      c.Path(),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			Params:    params,
			Status:    status,
			Duration:  duration,
			ErrorMsg:  errorMsg,
		}

		// 异步保存日志
		utils.SafeGo(func() {
			db.Create(log)
		})

		return err
	}
}
