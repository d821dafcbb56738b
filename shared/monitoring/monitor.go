package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor records run outcomes. It is shared between the CLI and serve modes,
// so all state is guarded for concurrent requests.
type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	totalRuns      int
	failedRuns     int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.totalRuns++
	m.mu.Unlock()

	log.Printf("✅ Pitch run completed - %s (took %v)", summary, duration)
}

func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	// Partial failures (some videos skipped) do not change health status
	log.Printf("⚠️  PARTIAL FAILURE: %s (Duration: %v)", err.Error(), duration)
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.totalRuns++
	m.failedRuns++
	m.mu.Unlock()

	log.Printf("🚨 CRITICAL FAILURE: %s (Duration: %v)", err.Error(), duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return "No pitch runs yet"
	}

	if m.lastRunSuccess {
		return fmt.Sprintf("✅ Last run: %s (%d runs, %d failed)",
			m.lastRunTime.Format("Jan 2 15:04"), m.totalRuns, m.failedRuns)
	}
	return fmt.Sprintf("❌ Last run failed: %s (%d runs, %d failed)",
		m.lastRunTime.Format("Jan 2 15:04"), m.totalRuns, m.failedRuns)
}
