package systems

import (
	"fmt"
	"slices"
	"time"

	"github.com/zeusync/wavecore/internal/core/observability/log"
)

type entry struct {
	system  System
	seq     int
	enabled bool
	metrics Metrics
}

// Manager runs registered systems in phase order. A failing system is logged
// and does not stop the rest of the tick.
type Manager struct {
	logger  log.Log
	entries []*entry
	byName  map[string]*entry
	nextSeq int
}

func NewManager(logger log.Log) *Manager {
	return &Manager{logger: logger, byName: make(map[string]*entry)}
}

func (m *Manager) Register(s System) error {
	if _, exists := m.byName[s.Name()]; exists {
		return fmt.Errorf("system %q already registered", s.Name())
	}
	e := &entry{system: s, seq: m.nextSeq, enabled: true}
	m.nextSeq++
	m.byName[s.Name()] = e
	m.entries = append(m.entries, e)
	slices.SortStableFunc(m.entries, func(a, b *entry) int {
		if a.system.Phase() != b.system.Phase() {
			return int(a.system.Phase()) - int(b.system.Phase())
		}
		return a.seq - b.seq
	})
	return nil
}

func (m *Manager) Get(name string) (System, bool) {
	e, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return e.system, true
}

func (m *Manager) SetEnabled(name string, enabled bool) bool {
	e, ok := m.byName[name]
	if !ok {
		return false
	}
	e.enabled = enabled
	return true
}

// ExecutionOrder lists system names in the order Update runs them.
func (m *Manager) ExecutionOrder() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.system.Name()
	}
	return out
}

func (m *Manager) Metrics(name string) (Metrics, bool) {
	e, ok := m.byName[name]
	if !ok {
		return Metrics{}, false
	}
	return e.metrics, true
}

// Update runs every enabled system once.
func (m *Manager) Update(deltaTime float64) {
	for _, e := range m.entries {
		if !e.enabled {
			continue
		}
		start := time.Now()
		err := e.system.Update(deltaTime)
		elapsed := time.Since(start)

		e.metrics.ExecutionCount++
		e.metrics.TotalExecutionTime += elapsed
		e.metrics.MaxExecutionTime = max(e.metrics.MaxExecutionTime, elapsed)
		if err != nil {
			e.metrics.ErrorCount++
			e.metrics.LastError = err
			m.logger.Error("system update failed",
				log.String("system", e.system.Name()),
				log.String("phase", e.system.Phase().String()),
				log.Error(err),
			)
		}
	}
}
