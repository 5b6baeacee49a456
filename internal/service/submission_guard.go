package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale locks
	guardCleanupInterval = 10 * time.Minute

	// How long a lock must be unused before cleanup
	guardStaleThreshold = 10 * time.Minute
)

// SubmissionGuard serializes submissions per key (one appointment) across
// requests. A second submission for a held key fails immediately instead
// of queueing.
//
// Lock entries are created on demand and removed by a background loop once
// they have been idle for guardStaleThreshold. Call Stop() during shutdown.
type SubmissionGuard struct {
	log *logrus.Logger

	locks sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

func NewSubmissionGuard(log *logrus.Logger) *SubmissionGuard {
	g := &SubmissionGuard{
		log:      log,
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop(guardCleanupInterval)

	return g
}

// TryAcquire takes the lock for key without blocking. On success the
// returned release func must be called exactly once; extra calls are no-ops.
func (g *SubmissionGuard) TryAcquire(key string) (func(), bool) {
	for {
		mt := g.getMutex(key)
		if !mt.mu.TryLock() {
			return nil, false
		}

		// The cleanup loop may have dropped this entry between lookup and
		// lock; holding an orphaned mutex would not exclude anyone.
		if current, ok := g.locks.Load(key); !ok || current != mt {
			mt.mu.Unlock()
			continue
		}

		var once sync.Once
		return func() {
			once.Do(func() {
				mt.lastUsed.Store(time.Now().Unix())
				mt.mu.Unlock()
			})
		}, true
	}
}

// Stop gracefully shuts down the cleanup loop.
// Safe to call multiple times.
func (g *SubmissionGuard) Stop() {
	if g.stopped.CompareAndSwap(false, true) {
		close(g.stopChan)
		g.wg.Wait()
		g.log.Info("SubmissionGuard stopped")
	}
}

func (g *SubmissionGuard) getMutex(key string) *mutexWithTimestamp {
	mt, _ := g.locks.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (g *SubmissionGuard) cleanupLoop(interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			g.log.Debug("Submission guard cleanup goroutine stopping")
			return
		case <-ticker.C:
			g.cleanupStale(time.Now().Add(-guardStaleThreshold))
		}
	}
}

// cleanupStale removes locks idle since before cutoff. lastUsed is checked
// while holding the lock so an entry in use is never dropped.
func (g *SubmissionGuard) cleanupStale(cutoff time.Time) int {
	cutoffUnix := cutoff.Unix()
	var cleaned int

	g.locks.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffUnix {
				g.locks.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		g.log.Debugf("Cleaned up %d stale submission locks", cleaned)
	}
	return cleaned
}
