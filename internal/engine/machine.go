package engine

import (
	"sync"
	"time"

	"github.com/ytget/timetable-viewer/internal/model"
)

// DefaultInterval is the polling period while the solver runs
const DefaultInterval = 2 * time.Second

// State of the solving state machine
type State int

const (
	StateIdle State = iota
	StateSolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSolving:
		return "solving"
	default:
		return "unknown"
	}
}

// Machine tracks whether the server is solving and owns the polling timer.
// At most one timer is running at any time.
type Machine struct {
	mu       sync.Mutex
	state    State
	interval time.Duration
	stop     chan struct{}
	closed   bool
	started  int
	wg       sync.WaitGroup

	tick     func()
	onChange func(solving bool)
}

// NewMachine creates an idle machine. tick runs on every timer period while
// solving; onChange is called on every state change.
func NewMachine(interval time.Duration, tick func(), onChange func(solving bool)) *Machine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if tick == nil {
		tick = func() {}
	}
	if onChange == nil {
		onChange = func(bool) {}
	}
	return &Machine{
		state:    StateIdle,
		interval: interval,
		tick:     tick,
		onChange: onChange,
	}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Solving reports whether the machine is in StateSolving
func (m *Machine) Solving() bool {
	return m.State() == StateSolving
}

// Ticking reports whether the polling timer is running
func (m *Machine) Ticking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}

// TimersStarted returns how many timers were started over the machine lifetime
func (m *Machine) TimersStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Observe applies the solver status of a freshly rendered snapshot
func (m *Machine) Observe(status model.SolverStatus) {
	if status.IsSolving() {
		m.MarkSolving()
		return
	}
	m.MarkIdle()
}

// MarkSolving enters StateSolving and starts the timer if it is not running
func (m *Machine) MarkSolving() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSolving {
		m.state = StateSolving
		m.onChange(true)
	}
	if m.stop != nil || m.closed {
		return
	}

	stop := make(chan struct{})
	m.stop = stop
	m.started++
	m.wg.Add(1)
	go m.run(stop, m.interval)
}

// MarkIdle enters StateIdle and stops the timer. It does not wait for a tick
// in progress, so it is safe to call from inside the tick callback.
func (m *Machine) MarkIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		m.state = StateIdle
		m.onChange(false)
	}
	m.stopTimer()
}

// Close stops the timer and waits for the tick goroutine to exit.
// Must not be called from the tick callback.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.stopTimer()
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Machine) stopTimer() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	m.stop = nil
}

func (m *Machine) run(stop <-chan struct{}, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			m.tick()
		}
	}
}
