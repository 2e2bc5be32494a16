package threadpool_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcleres/polycubist/internal/threadpool"
)

func TestSubmitAndWaitRunsAllTasks(t *testing.T) {
	p := threadpool.New(4)
	defer p.Stop()

	var count atomic.Int64
	const n = 1000
	for i := 0; i < n; i++ {
		p.Submit(func() { count.Add(1) })
	}
	p.Wait()

	assert.EqualValues(t, n, count.Load())
}

func TestWaitIsReusable(t *testing.T) {
	p := threadpool.New(2)
	defer p.Stop()

	var count atomic.Int64
	for round := 0; round < 3; round++ {
		for i := 0; i < 50; i++ {
			p.Submit(func() { count.Add(1) })
		}
		p.Wait()
	}
	assert.EqualValues(t, 150, count.Load())
}

func TestWorkerPanicIsRecoveredAndLogged(t *testing.T) {
	p := threadpool.New(1)
	defer p.Stop()

	var log logBuf
	p.Log = &log

	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Wait()

	assert.True(t, ran.Load(), "pool must keep processing tasks after a worker panic")
	assert.Contains(t, log.String(), "boom")
}

type logBuf struct {
	data []byte
}

func (l *logBuf) Write(p []byte) (int, error) {
	l.data = append(l.data, p...)
	return len(p), nil
}

func (l *logBuf) String() string { return string(l.data) }

func TestNewPanicsOnNonPositiveWorkers(t *testing.T) {
	assert.Panics(t, func() { threadpool.New(0) })
}
