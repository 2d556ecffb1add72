package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Budget       int // Iterations requested
	ChanceNodes  int
	Horizon      int
	Duration     time.Duration
	Iterations   int // Iterations completed
	Expansions   int
	FullRollouts int
	IsTreeReset  bool
}

type DecisionMetric struct {
	Step   int
	Action int
	Value  float64 // Value target at the root
	SearchMetric
}

type EpisodeMetric struct {
	Seed         uint64
	Cost         float64
	BaselineCost float64
	Decisions    int
	TreeReuses   int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

type Collector interface {
	Start(budget, chanceNodes, horizon int)
	SetTreeReset(value bool)
	AddIteration()
	AddExpansion()
	AddFullRollout()
	Complete() SearchMetric
}

type collector struct {
	budget       int
	chanceNodes  int
	horizon      int
	startTime    time.Time
	iterations   atomic.Int32
	expansions   atomic.Int32
	fullRollouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) Start(budget, chanceNodes, horizon int) {
	m.startTime = time.Now()
	m.budget = budget
	m.chanceNodes = chanceNodes
	m.horizon = horizon
	m.iterations.Store(0)
	m.expansions.Store(0)
	m.fullRollouts.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddFullRollout() {
	m.fullRollouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:       m.budget,
		ChanceNodes:  m.chanceNodes,
		Horizon:      m.horizon,
		Duration:     time.Since(m.startTime),
		Iterations:   int(m.iterations.Load()),
		Expansions:   int(m.expansions.Load()),
		FullRollouts: int(m.fullRollouts.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget, chanceNodes, horizon int) {}
func (m *dummyCollector) SetTreeReset(value bool)                {}
func (m *dummyCollector) AddIteration()                          {}
func (m *dummyCollector) AddExpansion()                          {}
func (m *dummyCollector) AddFullRollout()                        {}
func (m *dummyCollector) Complete() SearchMetric                 { return SearchMetric{} }
