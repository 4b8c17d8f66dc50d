package views

import "github.com/kpumuk/lazychart/internal/bucket"

// PointerMsg is the mouse position in cells relative to the view's top-left
// corner.
type PointerMsg struct {
	X, Y int
}

// PointerLeaveMsg is sent when the mouse leaves the view.
type PointerLeaveMsg struct{}

// BackgroundMsg reports whether the terminal background is dark.
type BackgroundMsg struct {
	Dark bool
}

// PointsMsg carries a batch of events from the stream source.
type PointsMsg struct {
	Points []bucket.Point
}
