package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware Fiber 访问日志中间件
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Duration("latency", elapsed),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		lg := L().WithOptions(zap.WithCaller(false))
		switch {
		case status >= 500 || err != nil:
			lg.Error("HTTP", fields...)
		case status >= 400:
			lg.Warn("HTTP", fields...)
		default:
			lg.Info("HTTP", fields...)
		}
		return err
	}
}
