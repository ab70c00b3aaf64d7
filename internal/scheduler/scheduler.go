// Package scheduler drives the scan loop: a fixed delay between the end of
// one pass and the start of the next, so a slow pass never stacks onto the
// following one.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"govtrader/internal/logger"
)

type FixedDelayScheduler struct {
	Name  string
	Delay time.Duration

	ctx   context.Context
	nowFn func() time.Time
}

func NewFixedDelayScheduler(ctx context.Context, name string, delay time.Duration) *FixedDelayScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &FixedDelayScheduler{
		Name:  name,
		Delay: delay,
		ctx:   ctx,
		nowFn: time.Now,
	}
}

// Start runs task, sleeps, and repeats until the context is cancelled. A
// task error is logged and the loop continues; one bad pass must not stop
// the bot.
func (s *FixedDelayScheduler) Start(task func() error) {
	if s == nil {
		return
	}
	if task == nil {
		logger.Warnf("FixedDelayScheduler[%s]: task is nil, exit", s.Name)
		return
	}
	if s.Delay <= 0 {
		logger.Warnf("FixedDelayScheduler[%s]: invalid delay=%s, exit", s.Name, s.Delay)
		return
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}

	startAt := s.nowFn().UTC()
	logger.Infof("FixedDelayScheduler[%s]: started delay=%s at=%s",
		s.Name, s.Delay, startAt.Format(time.RFC3339))

	pass := 0
	for {
		select {
		case <-s.ctx.Done():
			logger.Infof("FixedDelayScheduler[%s]: ctx done, exit", s.Name)
			return
		default:
		}

		pass++
		passStart := s.nowFn().UTC()
		if err := runTask(task); err != nil {
			logger.Errorf("FixedDelayScheduler[%s]: pass %d failed: %v", s.Name, pass, err)
		}
		logger.Infof("FixedDelayScheduler[%s]: pass %d took %s | uptime=%s",
			s.Name, pass,
			s.nowFn().UTC().Sub(passStart).Truncate(time.Millisecond),
			s.nowFn().UTC().Sub(startAt).Truncate(time.Second))

		timer := time.NewTimer(s.Delay)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			logger.Infof("FixedDelayScheduler[%s]: ctx done, exit", s.Name)
			return
		case <-timer.C:
		}
	}
}

// runTask converts a task panic into an error so one poisoned pass cannot
// kill the loop.
func runTask(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task()
}
