package gridastar

import (
	"context"
	"sync"
)

// SolveTask hands one session to a batch worker.
type SolveTask struct {
	Index   int
	Session *Session
}

// SolveOutcome is a worker's report for one session.
type SolveOutcome struct {
	Index  int
	Result Result
	Err    error
}

// SolveAll solves independent sessions on a pool of worker goroutines.
// Each session is owned by exactly one worker while it runs, so sessions must
// not be shared between entries. Outcomes are returned in input order.
func SolveAll(contextObject context.Context, sessions []*Session, options ...Option) []SolveOutcome {
	batchOptions := applyOptions(options)
	numberOfWorkers := min(batchOptions.NumberOfWorkers, max(len(sessions), 1))

	taskChannel := make(chan SolveTask)
	outcomeChannel := make(chan SolveOutcome, len(sessions))

	// --- Start worker pool ---
	var wg sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				result, err := Solve(contextObject, task.Session)
				outcomeChannel <- SolveOutcome{Index: task.Index, Result: result, Err: err}
			}
		}()
	}

	// --- Dispatch ---
	go func() {
		defer close(taskChannel)
		for index, session := range sessions {
			select {
			case <-contextObject.Done():
				for rest := index; rest < len(sessions); rest++ {
					outcomeChannel <- SolveOutcome{Index: rest, Err: contextObject.Err()}
				}
				return
			case taskChannel <- SolveTask{Index: index, Session: session}:
			}
		}
	}()

	wg.Wait()
	// workers only return once the dispatcher has closed taskChannel
	close(outcomeChannel)

	outcomes := make([]SolveOutcome, len(sessions))
	for outcome := range outcomeChannel {
		outcomes[outcome.Index] = outcome
	}
	return outcomes
}
