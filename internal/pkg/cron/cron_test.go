package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	calls atomic.Int32
	err   error
}

func (p *countingPruner) Prune(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

type countingSyncer struct {
	calls atomic.Int32
}

func (s *countingSyncer) SyncFilms(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 6, nil
}

func TestService_RunsTasks(t *testing.T) {
	pruner := &countingPruner{}
	syncer := &countingSyncer{}

	svc := NewService(pruner, syncer, 10*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	svc.Start()

	assert.Eventually(t, func() bool {
		return pruner.calls.Load() >= 2 && syncer.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	svc.Stop()

	// 停止后不再执行
	pruned, synced := pruner.calls.Load(), syncer.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, pruned, pruner.calls.Load())
	assert.Equal(t, synced, syncer.calls.Load())
}

func TestService_DisabledTasks(t *testing.T) {
	pruner := &countingPruner{}
	syncer := &countingSyncer{}

	svc := NewService(pruner, syncer, 0, 0, zerolog.Nop())
	svc.Start()
	time.Sleep(30 * time.Millisecond)
	svc.Stop()

	assert.Equal(t, int32(0), pruner.calls.Load())
	assert.Equal(t, int32(0), syncer.calls.Load())
}

func TestService_NilDependencies(t *testing.T) {
	svc := NewService(nil, nil, 10*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	svc.Start()
	time.Sleep(30 * time.Millisecond)
	svc.Stop()
}

func TestService_PruneErrorKeepsRunning(t *testing.T) {
	pruner := &countingPruner{err: errors.New("db locked")}

	svc := NewService(pruner, nil, 10*time.Millisecond, 0, zerolog.Nop())
	svc.Start()
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		return pruner.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestService_StopIdempotent(t *testing.T) {
	svc := NewService(nil, nil, 0, 0, zerolog.Nop())
	svc.Start()
	svc.Stop()
	svc.Stop()
}
