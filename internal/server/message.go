package server

import (
	"github.com/paulmach/orb/geojson"

	"github.com/pdrpinto/gridastar"
)

// Events exchanged with the browser.
const (
	EventBoard  = "board"
	EventFrame  = "frame"
	EventNotice = "notice"

	EventPress   = "press"
	EventDrag    = "drag"
	EventRelease = "release"
	EventStart   = "start"
	EventReset   = "reset"
	EventRewind  = "rewind"
	EventScatter = "scatter"
	EventResize  = "resize"
)

// FrameMessage is the JSON form of a frame sent on EventFrame.
type FrameMessage struct {
	ID          string            `json:"id"`
	Cols        int               `json:"cols"`
	Rows        int               `json:"rows"`
	Resolution  float64           `json:"resolution"`
	State       string            `json:"state"`
	Step        int               `json:"step"`
	Source      gridastar.Coord   `json:"source"`
	Destination gridastar.Coord   `json:"destination"`
	Current     *gridastar.Coord  `json:"current,omitempty"`
	Open        []gridastar.Coord `json:"open"`
	Closed      []gridastar.Coord `json:"closed"`
	Obstacles   []gridastar.Coord `json:"obstacles"`
	Hints       []gridastar.Hint  `json:"hints"`
	Path        *geojson.Feature  `json:"path,omitempty"`
	Notice      string            `json:"notice,omitempty"`
}

func newFrameMessage(id string, frame gridastar.Frame) FrameMessage {
	msg := FrameMessage{
		ID:          id,
		Cols:        frame.Cols,
		Rows:        frame.Rows,
		Resolution:  frame.Resolution,
		State:       frame.State.String(),
		Step:        frame.Step,
		Source:      frame.Source,
		Destination: frame.Destination,
		Current:     frame.Current,
		Open:        frame.Open,
		Closed:      frame.Closed,
		Obstacles:   frame.Obstacles,
		Hints:       frame.Hints,
		Notice:      frame.Notice,
	}
	if len(frame.Path) > 0 {
		msg.Path = geojson.NewFeature(frame.PathLine())
		msg.Path.Properties["edges"] = frame.Path.Len()
	}
	return msg
}

// pointer extracts {x, y} from an event payload.
func pointer(args []any) (x, y float64, ok bool) {
	values, ok := numbers(args, "x", "y")
	if !ok {
		return 0, 0, false
	}
	return values[0], values[1], true
}

func numbers(args []any, keys ...string) ([]float64, bool) {
	if len(args) == 0 {
		return nil, false
	}
	payload, ok := args[0].(map[string]any)
	if !ok {
		return nil, false
	}
	values := make([]float64, 0, len(keys))
	for _, key := range keys {
		switch v := payload[key].(type) {
		case float64:
			values = append(values, v)
		case int:
			values = append(values, float64(v))
		default:
			return nil, false
		}
	}
	return values, true
}
