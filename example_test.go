package gridastar_test

import (
	"fmt"
	"log/slog"

	"github.com/pdrpinto/gridastar"
)

// ExampleSession_Step drives a 3x3 board one expansion at a time, the way a
// render loop would, with a wall in the middle column.
func ExampleSession_Step() {
	session, _ := gridastar.NewSession(3, 3,
		gridastar.WithResolution(1),
		gridastar.WithSource(gridastar.Coord{I: 0, J: 0}),
		gridastar.WithDestination(gridastar.Coord{I: 2, J: 0}),
		gridastar.WithLogger(slog.New(slog.DiscardHandler)),
	)

	editor := gridastar.NewEditor(session)
	editor.PressCell(gridastar.Coord{I: 1, J: 0})
	editor.DragCell(gridastar.Coord{I: 1, J: 1})
	editor.ReleaseCell(gridastar.Coord{I: 1, J: 1})

	_ = session.Start()
	for {
		state, _ := session.Step()
		if state.Terminal() {
			fmt.Println("state:", state)
			break
		}
	}

	path, _ := session.Path()
	fmt.Println("edges:", path.Len())
	fmt.Println("route:", path.Forward())

	// Output:
	// state: solved
	// edges: 6
	// route: [(0,0) (0,1) (0,2) (1,2) (2,2) (2,1) (2,0)]
}

// ExampleEditor_ReleaseCell shows the snap-back when the source is dropped
// onto the destination.
func ExampleEditor_ReleaseCell() {
	session, _ := gridastar.NewSession(5, 1,
		gridastar.WithSource(gridastar.Coord{I: 0, J: 0}),
		gridastar.WithDestination(gridastar.Coord{I: 4, J: 0}),
		gridastar.WithLogger(slog.New(slog.DiscardHandler)),
	)
	editor := gridastar.NewEditor(session)

	editor.PressCell(session.Source())
	editor.ReleaseCell(session.Destination())
	fmt.Println(session.Source(), session.Destination())

	// Output:
	// (3,0) (4,0)
}
