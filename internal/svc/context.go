package svc

import (
	"rdm/curations/internal/auth"
	"rdm/curations/internal/config"
	"rdm/curations/internal/service"
	"rdm/curations/internal/tasks"

	"gorm.io/gorm"
)

// ServiceContext 全局服务上下文
type ServiceContext struct {
	Config        *config.Config
	DB            *gorm.DB
	Permissions   *auth.PermissionService
	Users         *service.UserService
	Events        *service.RequestEventService
	Notifications *service.NotificationService
	Requests      *service.CurationRequestService
	Records       *service.RecordService
	Pool          *tasks.Pool
}

var Ctx *ServiceContext

// Init 初始化服务上下文
func Init(cfg *config.Config, db *gorm.DB) error {
	permissions := auth.NewPermissionService(db, cfg.Curations.ModerationRole)
	users := service.NewUserService(db)
	events := service.NewRequestEventService(db)
	notifications := service.NewNotificationService(db)
	requests := service.NewCurationRequestService(db, permissions, events, notifications)
	records := service.NewRecordService(db, requests, events, cfg.Curations)

	pool, err := tasks.NewPool(tasks.DefaultPoolSize, records, requests)
	if err != nil {
		return err
	}

	Ctx = &ServiceContext{
		Config:        cfg,
		DB:            db,
		Permissions:   permissions,
		Users:         users,
		Events:        events,
		Notifications: notifications,
		Requests:      requests,
		Records:       records,
		Pool:          pool,
	}
	return nil
}
