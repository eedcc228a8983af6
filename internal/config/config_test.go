package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYaml = `
app:
  name: curations
  version: 1.0.0
  env: test
server:
  host: 127.0.0.1
  port: 9000
database:
  driver: postgres
  host: db.internal
  port: 5432
  username: rdm
  database: rdm_curations
redis:
  host: cache.internal
  port: 6379
curations:
  moderation_role: reviewer
  allow_publishing_edits: true
  request_expire_days: 45
  log_retention_days: 90
  scheduler:
    enabled: true
    expire_cron: "*/10 * * * *"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t, testYaml))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	t.Run("公共段内联解析", func(t *testing.T) {
		if cfg.App.Name != "curations" {
			t.Errorf("app.name 期望 curations, 实际 %s", cfg.App.Name)
		}
		if cfg.Server.Port != 9000 {
			t.Errorf("server.port 期望 9000, 实际 %d", cfg.Server.Port)
		}
		if cfg.Database.Driver != "postgres" {
			t.Errorf("database.driver 期望 postgres, 实际 %s", cfg.Database.Driver)
		}
		if !cfg.Redis.Enabled() {
			t.Error("redis.host 已配置, Enabled 期望 true")
		}
	})

	t.Run("策展段解析", func(t *testing.T) {
		if cfg.Curations.ModerationRole != "reviewer" {
			t.Errorf("moderation_role 期望 reviewer, 实际 %s", cfg.Curations.ModerationRole)
		}
		if !cfg.Curations.AllowPublishingEdits {
			t.Error("allow_publishing_edits 期望 true")
		}
		if cfg.Curations.RequestExpireDays != 45 {
			t.Errorf("request_expire_days 期望 45, 实际 %d", cfg.Curations.RequestExpireDays)
		}
		if cfg.Curations.LogRetentionDays != 90 {
			t.Errorf("log_retention_days 期望 90, 实际 %d", cfg.Curations.LogRetentionDays)
		}
		if !cfg.Curations.Scheduler.Enabled {
			t.Error("scheduler.enabled 期望 true")
		}
		if cfg.Curations.Scheduler.ExpireCron != "*/10 * * * *" {
			t.Errorf("expire_cron 期望 */10 * * * *, 实际 %s", cfg.Curations.Scheduler.ExpireCron)
		}
	})

	t.Run("未配置项填充缺省值", func(t *testing.T) {
		if cfg.Curations.Scheduler.LogCleanupCron != "30 3 * * *" {
			t.Errorf("log_cleanup_cron 期望缺省值 30 3 * * *, 实际 %s", cfg.Curations.Scheduler.LogCleanupCron)
		}
	})
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("配置文件不存在期望返回错误")
	}
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	if _, err := LoadConfig(writeTestConfig(t, "curations: [broken")); err == nil {
		t.Error("非法YAML期望返回错误")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("空配置填满缺省值", func(t *testing.T) {
		var cfg Config
		cfg.applyDefaults()
		if cfg.Curations.ModerationRole != DefaultModerationRole {
			t.Errorf("moderation_role 期望 %s, 实际 %s", DefaultModerationRole, cfg.Curations.ModerationRole)
		}
		if cfg.Curations.Scheduler.ExpireCron != "0 * * * *" {
			t.Errorf("expire_cron 期望 0 * * * *, 实际 %s", cfg.Curations.Scheduler.ExpireCron)
		}
		if cfg.Curations.Scheduler.LogCleanupCron != "30 3 * * *" {
			t.Errorf("log_cleanup_cron 期望 30 3 * * *, 实际 %s", cfg.Curations.Scheduler.LogCleanupCron)
		}
	})

	t.Run("已配置项不被覆盖", func(t *testing.T) {
		var cfg Config
		cfg.Curations.ModerationRole = "editor"
		cfg.Curations.Scheduler.ExpireCron = "@hourly"
		cfg.applyDefaults()
		if cfg.Curations.ModerationRole != "editor" {
			t.Errorf("moderation_role 期望保持 editor, 实际 %s", cfg.Curations.ModerationRole)
		}
		if cfg.Curations.Scheduler.ExpireCron != "@hourly" {
			t.Errorf("expire_cron 期望保持 @hourly, 实际 %s", cfg.Curations.Scheduler.ExpireCron)
		}
	})
}
