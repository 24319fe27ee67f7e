package gridastar

import (
	"context"
	"fmt"
)

// Result contains the outcome of a run driven to completion.
type Result struct {
	Path          Path
	TotalCost     float64
	ExpandedNodes int
	Steps         int
	Found         bool
}

// Solve drives the session one step at a time until it is solved or
// exhausted, starting it first when idle. The context is checked between
// steps; on cancellation the session is left running where it stopped.
func Solve(contextObject context.Context, session *Session) (Result, error) {
	if session.State() == StateIdle {
		if err := session.Start(); err != nil {
			return Result{}, err
		}
	}

	for !session.State().Terminal() {
		select {
		case <-contextObject.Done():
			return Result{ExpandedNodes: len(session.search.closedOrder), Steps: session.Steps()}, contextObject.Err()
		default:
		}
		if _, err := session.Step(); err != nil {
			return Result{}, err
		}
	}

	result := Result{
		ExpandedNodes: len(session.search.closedOrder),
		Steps:         session.Steps(),
	}
	if session.State() == StateExhausted {
		return result, fmt.Errorf("%w: %v to %v", ErrNoPath, session.Source(), session.Destination())
	}

	path, err := session.Path()
	if err != nil {
		return result, err
	}
	result.Path = path.Forward()
	result.TotalCost = session.grid.node(session.destination).G
	result.Found = true
	return result, nil
}
