package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rdm/curations/common/database"
	"rdm/curations/common/logger"
	commonRedis "rdm/curations/common/redis"
	"rdm/curations/internal/auth"
	"rdm/curations/internal/config"
	"rdm/curations/internal/model"
	"rdm/curations/internal/router"
	"rdm/curations/internal/svc"
	"rdm/curations/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	// 自动迁移数据库表
	db := database.GetDB()
	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Record{},
		&model.CurationRequest{},
		&model.RequestEvent{},
		&model.Notification{},
		&model.LoginLog{},
		&model.OperationLog{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认数据
	initDefaultData(db, cfg.Curations.ModerationRole)

	// 初始化Redis，未配置时跳过，通知发布与调度锁自动降级
	if cfg.Redis.Enabled() {
		if err := commonRedis.Init(&cfg.Redis); err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		defer commonRedis.Close()
	}

	// 初始化SaToken
	if err := auth.InitSaToken(cfg); err != nil {
		log.Fatalf("初始化SaToken失败: %v", err)
	}

	// 初始化服务上下文
	if err := svc.Init(cfg, db); err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}
	defer svc.Ctx.Pool.Release()

	// 定时任务
	var scheduler *tasks.Scheduler
	if cfg.Curations.Scheduler.Enabled {
		scheduler, err = tasks.NewScheduler(cfg.Curations, db, svc.Ctx.Requests, nil)
		if err != nil {
			log.Fatalf("初始化定时任务失败: %v", err)
		}
		if err := scheduler.Start(); err != nil {
			log.Fatalf("启动定时任务失败: %v", err)
		}
	}

	// 创建Fiber应用
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  0,
		WriteTimeout: 0,
	})

	// 设置路由
	router.Setup(app, svc.Ctx)

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("服务器启动在 http://%s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("定时任务关闭失败: %v", err)
		}
	}
	if err := app.Shutdown(); err != nil {
		log.Printf("服务器关闭失败: %v", err)
	}
	log.Println("服务器已关闭")
}

// initDefaultData 初始化默认数据
func initDefaultData(db *gorm.DB, moderationRole string) {
	// 已有用户则跳过
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("初始化默认数据...")

	// 管理员角色
	adminRole := &model.Role{
		Name:        "超级管理员",
		Code:        model.RoleCodeAdmin,
		Status:      1,
		Remark:      "拥有所有权限",
		Permissions: datatypes.NewJSONSlice([]string{"*"}),
	}
	db.Create(adminRole)

	// 策展角色，接收并处理策展请求
	curatorRole := &model.Role{
		Name:   "策展人",
		Code:   moderationRole,
		Status: 1,
		Remark: "接收策展请求并评审记录",
	}
	db.Create(curatorRole)

	// 默认管理员，同时兼任策展人
	adminUser := &model.User{
		Username: "admin",
		Password: "e10adc3949ba59abbe56e057f20f883e", // 123456 的 MD5
		Nickname: "管理员",
		Status:   1,
	}
	db.Create(adminUser)

	db.Create(&model.UserRole{UserID: adminUser.ID, RoleID: adminRole.ID})
	db.Create(&model.UserRole{UserID: adminUser.ID, RoleID: curatorRole.ID})

	log.Println("默认数据初始化完成")
}
