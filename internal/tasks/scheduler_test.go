package tasks

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"rdm/curations/internal/config"
)

type fakeExpirer struct {
	cutoffs []time.Time
	ids     []uint
	err     error
}

func (f *fakeExpirer) ExpireStale(before time.Time) ([]uint, error) {
	f.cutoffs = append(f.cutoffs, before)
	return f.ids, f.err
}

func testConfig(expireDays int) config.CurationsConfig {
	return config.CurationsConfig{
		RequestExpireDays: expireDays,
		Scheduler: config.SchedulerConfig{
			Enabled:        true,
			ExpireCron:     "0 * * * *",
			LogCleanupCron: "30 3 * * *",
		},
	}
}

func TestSchedulerExpireCutoff(t *testing.T) {
	clock := clockwork.NewFakeClock()
	expirer := &fakeExpirer{ids: []uint{3, 7}}

	scheduler, err := NewScheduler(testConfig(30), nil, expirer, clock)
	if err != nil {
		t.Fatalf("创建调度器失败: %v", err)
	}

	scheduler.runExpire()

	if len(expirer.cutoffs) != 1 {
		t.Fatalf("期望触发 1 次过期检查, 实际 %d", len(expirer.cutoffs))
	}
	want := clock.Now().Add(-30 * 24 * time.Hour)
	if !expirer.cutoffs[0].Equal(want) {
		t.Errorf("过期界限期望 %v, 实际 %v", want, expirer.cutoffs[0])
	}
}

func TestSchedulerExpireDisabled(t *testing.T) {
	expirer := &fakeExpirer{}

	scheduler, err := NewScheduler(testConfig(0), nil, expirer, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("创建调度器失败: %v", err)
	}

	scheduler.runExpire()

	if len(expirer.cutoffs) != 0 {
		t.Errorf("过期天数为 0 时不应触发检查, 实际 %d 次", len(expirer.cutoffs))
	}
}

func TestSchedulerExpireFailureLogged(t *testing.T) {
	// 过期检查失败只记日志，下一轮继续
	expirer := &fakeExpirer{err: errors.New("db down")}

	scheduler, err := NewScheduler(testConfig(7), nil, expirer, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("创建调度器失败: %v", err)
	}

	scheduler.runExpire()
	scheduler.runExpire()

	if len(expirer.cutoffs) != 2 {
		t.Errorf("失败后应可重试, 实际 %d 次", len(expirer.cutoffs))
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	scheduler, err := NewScheduler(testConfig(30), nil, &fakeExpirer{}, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("创建调度器失败: %v", err)
	}

	if err := scheduler.Start(); err != nil {
		t.Fatalf("启动调度器失败: %v", err)
	}
	if err := scheduler.Shutdown(); err != nil {
		t.Errorf("停止调度器失败: %v", err)
	}
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	cfg := testConfig(30)
	cfg.Scheduler.ExpireCron = "not a cron"

	scheduler, err := NewScheduler(cfg, nil, &fakeExpirer{}, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("创建调度器失败: %v", err)
	}

	if err := scheduler.Start(); err == nil {
		t.Error("非法 cron 表达式应在启动时报错")
		_ = scheduler.Shutdown()
	}
}

func TestExpireCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got := expireCutoff(now, 30)
	want := time.Date(2025, 5, 16, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望 %v, 实际 %v", want, got)
	}
}
