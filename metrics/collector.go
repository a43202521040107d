package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines  int
	Depth       int
	Duration    time.Duration
	MaxNodes    int64
	ChanceNodes int64
	Evaluations int64
	Pruned      int64
}

// Nodes is the total number of max and chance nodes visited
func (s SearchMetric) Nodes() int64 {
	return s.MaxNodes + s.ChanceNodes
}

type MoveMetric struct {
	Step       int
	Move       string
	ScoreDelta int
	SearchMetric
}

type GameMetric struct {
	Seed       int64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Score      int
	MaxTile    int
	GameOver   bool
}

type Collector interface {
	Start(goroutines, depth int)
	AddMaxNode()
	AddChanceNode()
	AddEvaluation()
	AddPruned()
	Complete() SearchMetric
}

// collector counters are atomic so root moves can be searched in parallel.
type collector struct {
	goroutines  int
	depth       int
	startTime   time.Time
	maxNodes    atomic.Int64
	chanceNodes atomic.Int64
	evaluations atomic.Int64
	pruned      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
}

func (m *collector) AddMaxNode() {
	m.maxNodes.Add(1)
}

func (m *collector) AddChanceNode() {
	m.chanceNodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  m.goroutines,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		MaxNodes:    m.maxNodes.Load(),
		ChanceNodes: m.chanceNodes.Load(),
		Evaluations: m.evaluations.Load(),
		Pruned:      m.pruned.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddMaxNode()                 {}
func (m *dummyCollector) AddChanceNode()              {}
func (m *dummyCollector) AddEvaluation()              {}
func (m *dummyCollector) AddPruned()                  {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
