package config

import (
	"os"
	"sync"

	commonConfig "rdm/curations/common/config"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	commonConfig.Config `yaml:",inline"`
	Curations           CurationsConfig `yaml:"curations"`
}

// CurationsConfig 审核工作流配置
type CurationsConfig struct {
	ModerationRole       string          `yaml:"moderation_role"`        // 审核角色编码
	AllowPublishingEdits bool            `yaml:"allow_publishing_edits"` // 已发布记录的修订是否免审直接发布
	RequestExpireDays    int             `yaml:"request_expire_days"`    // 开放请求超过该天数未活动则过期，0表示不过期
	LogRetentionDays     int             `yaml:"log_retention_days"`     // 操作日志保留天数
	Scheduler            SchedulerConfig `yaml:"scheduler"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ExpireCron     string `yaml:"expire_cron"`      // 过期检查任务
	LogCleanupCron string `yaml:"log_cleanup_cron"` // 日志清理任务
}

// DefaultModerationRole 默认审核角色
const DefaultModerationRole = "curator"

var (
	globalConfig *Config
	once         sync.Once
)

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	once.Do(func() {
		globalConfig = &cfg
		// 同步到公共配置
		commonConfig.SetConfig(&cfg.Config)
	})

	return &cfg, nil
}

// applyDefaults 填充缺省值
func (c *Config) applyDefaults() {
	if c.Curations.ModerationRole == "" {
		c.Curations.ModerationRole = DefaultModerationRole
	}
	if c.Curations.Scheduler.ExpireCron == "" {
		c.Curations.Scheduler.ExpireCron = "0 * * * *"
	}
	if c.Curations.Scheduler.LogCleanupCron == "" {
		c.Curations.Scheduler.LogCleanupCron = "30 3 * * *"
	}
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return globalConfig
}
