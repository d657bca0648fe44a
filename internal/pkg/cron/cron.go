package cron

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Pruner 清理过期缓存
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Syncer 全量同步影片
type Syncer interface {
	SyncFilms(ctx context.Context) (int, error)
}

type Service struct {
	pruner          Pruner
	syncer          Syncer
	pruneInterval   time.Duration
	refreshInterval time.Duration
	log             zerolog.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService pruner 或 syncer 为 nil、间隔不大于 0 时对应任务不启动
func NewService(
	pruner Pruner,
	syncer Syncer,
	pruneInterval time.Duration,
	refreshInterval time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		pruner:          pruner,
		syncer:          syncer,
		pruneInterval:   pruneInterval,
		refreshInterval: refreshInterval,
		log:             log.With().Str("component", "cron").Logger(),
		stopChan:        make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	if s.pruner != nil && s.pruneInterval > 0 {
		s.run(s.pruneInterval, s.pruneCache)
	}
	if s.syncer != nil && s.refreshInterval > 0 {
		s.run(s.refreshInterval, s.refreshFilms)
	}
	s.log.Info().
		Dur("prune_interval", s.pruneInterval).
		Dur("refresh_interval", s.refreshInterval).
		Msg("cron service started")
}

// Stop 停止定时任务并等待正在执行的任务结束
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.log.Info().Msg("cron service stopped")
}

func (s *Service) run(interval time.Duration, task func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

// pruneCache 删除过期的缓存条目
func (s *Service) pruneCache() {
	n, err := s.pruner.Prune(context.Background())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prune cache")
		return
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Msg("cache pruned")
	}
}

// refreshFilms 定期从上游刷新影片
func (s *Service) refreshFilms() {
	n, err := s.syncer.SyncFilms(context.Background())
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled film refresh failed")
		return
	}
	s.log.Info().Int("count", n).Msg("scheduled film refresh completed")
}
