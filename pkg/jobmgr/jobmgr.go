// Package jobmgr runs named, cancellable background jobs. A job is a goroutine
// keyed by name; starting a job under a name that is already running replaces
// the old one (the old goroutine's context is cancelled). Jobs remove
// themselves on completion.
//
// The delayed form is the main use here: schedule work to run once after a
// delay, with the option to cancel it before it fires.
package jobmgr

import (
	"context"
	"sync"
	"time"
)

// StatusReporter receives lifecycle messages such as "running:unmute:123" or
// "done:unmute:123". May be nil.
type StatusReporter func(string)

type job struct {
	cancel context.CancelFunc
}

// Manager tracks running jobs by name. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*job
	Reporter StatusReporter
}

func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*job),
		Reporter: reporter,
	}
}

// Start runs runner in its own goroutine under a cancellable context. If a job
// with the same name is running it is cancelled first; the newest request wins.
func (m *Manager) Start(name string, runner func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel}

	m.mu.Lock()
	if old, ok := m.jobs[name]; ok {
		old.cancel()
	}
	m.jobs[name] = j
	m.mu.Unlock()

	go func() {
		defer cancel()
		m.report("running:" + name)
		runner(ctx)
		m.report("done:" + name)

		m.mu.Lock()
		// Only remove our own entry; a replacement may have taken the name.
		if cur, ok := m.jobs[name]; ok && cur == j {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()
}

// StartAfter schedules runner to execute once after delay. Cancelling the job
// (Stop, or replacement by a newer job with the same name) before the delay
// elapses means runner never executes.
func (m *Manager) StartAfter(name string, delay time.Duration, runner func()) {
	m.Start(name, func(ctx context.Context) {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
			runner()
		}
	})
}

// Stop cancels a running job by name. Unknown names are a no-op.
func (m *Manager) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[name]; ok {
		j.cancel()
		delete(m.jobs, name)
	}
}

// Active reports whether a job with the given name is currently tracked.
func (m *Manager) Active(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[name]
	return ok
}

// List returns the names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	return out
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
