// Package tasks 后台任务：异步策展请求创建与定时维护作业。
package tasks

import (
	"errors"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"rdm/curations/common/logger"
	"rdm/curations/internal/service"
)

// DefaultPoolSize 任务池默认容量
const DefaultPoolSize = 8

// Pool 后台任务池，承接接口上的异步策展请求创建
type Pool struct {
	pool     *ants.Pool
	records  *service.RecordService
	requests *service.CurationRequestService
}

// NewPool 创建任务池
func NewPool(size int, records *service.RecordService, requests *service.CurationRequestService) (*Pool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p, records: records, requests: requests}, nil
}

// SubmitCurationRequest 异步为记录创建策展请求
// 已有进行中请求时只记告警，不视为失败
func (p *Pool) SubmitCurationRequest(userID uint, recordPID string) error {
	return p.pool.Submit(func() {
		record, err := p.records.GetByPID(recordPID)
		if err != nil {
			logger.L().Warn("异步策展请求未找到记录",
				zap.String("pid", recordPID),
				zap.Error(err))
			return
		}

		if _, err := p.requests.Create(userID, record); err != nil {
			if errors.Is(err, service.ErrOpenRequestExists) {
				logger.L().Warn("记录已有进行中的策展请求", zap.String("pid", recordPID))
				return
			}
			logger.L().Error("异步创建策展请求失败",
				zap.String("pid", recordPID),
				zap.Error(err))
		}
	})
}

// Running 正在执行的任务数
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release 关闭任务池
func (p *Pool) Release() {
	p.pool.Release()
}
