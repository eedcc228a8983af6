package tasks

import (
	"time"

	redislock "github.com/go-co-op/gocron-redis-lock/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/go-redsync/redsync/v4"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rdm/curations/common/logger"
	commonRedis "rdm/curations/common/redis"
	"rdm/curations/common/utils"
	"rdm/curations/internal/config"
	"rdm/curations/internal/model"
)

// requestExpirer 过期作业需要的能力
type requestExpirer interface {
	ExpireStale(before time.Time) ([]uint, error)
}

// Scheduler 定时维护作业：开放请求过期、操作日志清理
type Scheduler struct {
	scheduler gocron.Scheduler
	clock     clockwork.Clock
	cfg       config.CurationsConfig
	requests  requestExpirer
	db        *gorm.DB
}

// NewScheduler 创建调度器
// Redis 可用时挂分布式锁，多实例部署下同一作业只跑一份；
// 抢锁只试一次，抢不到本轮跳过
func NewScheduler(cfg config.CurationsConfig, db *gorm.DB, requests requestExpirer, clock clockwork.Clock) (*Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	options := []gocron.SchedulerOption{gocron.WithClock(clock)}
	if client := commonRedis.GetClient(); client != nil {
		locker, err := redislock.NewRedisLocker(client, redsync.WithTries(1))
		if err != nil {
			logger.L().Warn("初始化调度锁失败, 退化为本地调度", zap.Error(err))
		} else {
			options = append(options, gocron.WithDistributedLocker(locker))
		}
	}

	scheduler, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: scheduler,
		clock:     clock,
		cfg:       cfg,
		requests:  requests,
		db:        db,
	}, nil
}

// Start 注册并启动全部作业
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.NewJob(
		gocron.CronJob(s.cfg.Scheduler.ExpireCron, false),
		gocron.NewTask(s.runExpire),
		gocron.WithName("curation-request-expire"),
	); err != nil {
		return err
	}

	if _, err := s.scheduler.NewJob(
		gocron.CronJob(s.cfg.Scheduler.LogCleanupCron, false),
		gocron.NewTask(s.runLogCleanup),
		gocron.WithName("operation-log-cleanup"),
	); err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

// Shutdown 停止调度，等待在跑的作业结束
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// runExpire 关闭长时间无活动的开放请求
func (s *Scheduler) runExpire() {
	if s.cfg.RequestExpireDays <= 0 {
		return
	}

	cutoff := expireCutoff(s.clock.Now(), s.cfg.RequestExpireDays)
	ids, err := s.requests.ExpireStale(cutoff)
	if err != nil {
		logger.L().Error("过期检查失败", zap.Error(err))
		return
	}
	if len(ids) > 0 {
		logger.L().Info("策展请求已过期", zap.Uints("requestIds", ids))
	}
}

// runLogCleanup 清理超过保留期的操作日志
func (s *Scheduler) runLogCleanup() {
	if s.cfg.LogRetentionDays <= 0 {
		return
	}

	cutoff := utils.AddDays(s.clock.Now(), -s.cfg.LogRetentionDays)
	result := s.db.Unscoped().Where("created_at < ?", cutoff).Delete(&model.OperationLog{})
	if result.Error != nil {
		logger.L().Error("清理操作日志失败", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		logger.L().Info("操作日志已清理", zap.Int64("rows", result.RowsAffected))
	}
}

// expireCutoff 过期界限，依据最后活动时间判定
func expireCutoff(now time.Time, days int) time.Time {
	return utils.AddDays(now, -days)
}
