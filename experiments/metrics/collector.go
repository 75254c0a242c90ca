package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int // States visited
	Leaves     int // Heuristic cutoffs at depth 0
	Terminals  int // Finished games reached through a pass
	Passes     int // Forced passes explored
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	Value  int
	Ties   int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "draw" if no winner
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	BlackStones    int
	WhiteStones    int
}

// Collector counts search events. Implementations must be safe for concurrent use since
// sibling subtrees may be searched on separate goroutines.
type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	AddTerminal()
	AddPass()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	terminals  atomic.Int64
	passes     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.terminals.Store(0)
	m.passes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddPass() {
	m.passes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Terminals:  int(m.terminals.Load()),
		Passes:     int(m.passes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) AddTerminal()                {}
func (m *dummyCollector) AddPass()                    {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
