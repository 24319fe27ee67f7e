package gridastar

import (
	"cmp"
	"container/heap"
	"slices"
)

// State is the lifecycle of a search run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSolved
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSolved:
		return "solved"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Terminal reports whether stepping has halted for good.
func (s State) Terminal() bool { return s == StateSolved || s == StateExhausted }

// search holds the frontier and the finalized set for one run over a grid.
// It only ever reads obstacle flags; scores and parents are its own.
type search struct {
	grid        *Grid
	heuristic   Heuristic
	source      int
	destination int

	openSet     PriorityQueue
	openSetMap  map[int]*PriorityQueueItem
	closedSet   []bool
	closedOrder []int
	current     int

	state     State
	stepCount int
	sequence  int
}

func newSearch(grid *Grid, heuristic Heuristic) *search {
	return &search{
		grid:       grid,
		heuristic:  heuristic,
		openSetMap: make(map[int]*PriorityQueueItem),
		closedSet:  make([]bool, grid.Len()),
		current:    noParent,
	}
}

// begin seeds the frontier with the source and wipes every node's scores.
func (s *search) begin(source, destination int) {
	s.grid.resetScores()
	s.source, s.destination = source, destination
	s.openSet = make(PriorityQueue, 0)
	s.openSetMap = make(map[int]*PriorityQueueItem)
	s.closedSet = make([]bool, s.grid.Len())
	s.closedOrder = nil
	s.current = noParent
	s.stepCount = 0
	s.sequence = 0

	heap.Init(&s.openSet)
	s.push(source, 0)
	s.state = StateRunning
}

func (s *search) push(node int, fCost float64) {
	s.sequence++
	item := &PriorityQueueItem{Node: node, FCost: fCost, Sequence: s.sequence}
	heap.Push(&s.openSet, item)
	s.openSetMap[node] = item
}

// step advances the run by exactly one node expansion.
func (s *search) step() State {
	if s.state != StateRunning {
		return s.state
	}
	s.stepCount++

	if s.openSet.Len() == 0 {
		s.state = StateExhausted
		return s.state
	}

	// --- Select the lowest F; ties go to the earliest insertion ---
	current := s.openSet[0].Node
	s.current = current
	if current == s.destination {
		s.state = StateSolved
		return s.state
	}

	heap.Pop(&s.openSet)
	delete(s.openSetMap, current)
	s.closedSet[current] = true
	s.closedOrder = append(s.closedOrder, current)

	// --- Relax neighbours ---
	currentNode := s.grid.node(current)
	currentPosition := s.grid.Position(current)
	destinationPosition := s.grid.Position(s.destination)
	for _, neighbor := range currentNode.neighbors {
		if s.closedSet[neighbor] || s.grid.obstacle(neighbor) {
			continue
		}
		neighborNode := s.grid.node(neighbor)
		neighborPosition := s.grid.Position(neighbor)
		tentativeG := currentNode.G + s.heuristic(neighborPosition, currentPosition)

		item, inOpen := s.openSetMap[neighbor]
		if inOpen && tentativeG >= neighborNode.G {
			continue
		}
		neighborNode.G = tentativeG
		neighborNode.H = s.heuristic(neighborPosition, destinationPosition)
		neighborNode.F = neighborNode.G + neighborNode.H
		neighborNode.Parent = current

		if !inOpen {
			s.push(neighbor, neighborNode.F)
		} else {
			item.FCost = neighborNode.F
			heap.Fix(&s.openSet, item.IndexInQueue)
		}
	}

	return s.state
}

// openNodes lists the frontier in insertion order.
func (s *search) openNodes() []int {
	items := make([]*PriorityQueueItem, len(s.openSet))
	copy(items, s.openSet)
	slices.SortFunc(items, func(a, b *PriorityQueueItem) int { return cmp.Compare(a.Sequence, b.Sequence) })
	nodes := make([]int, len(items))
	for i, item := range items {
		nodes[i] = item.Node
	}
	return nodes
}

func (s *search) inOpen(node int) bool {
	_, ok := s.openSetMap[node]
	return ok
}

func (s *search) closed(node int) bool { return s.closedSet[node] }
