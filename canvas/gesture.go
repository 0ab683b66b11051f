package canvas

import "math"

// GestureKind distinguishes the three transform gestures
type GestureKind int

const (
	GestureDrag GestureKind = iota
	GestureResize
	GestureRotate
)

// Point is a canvas-space coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// gestureState captures the element's bounds at pointer-down so every move
// event is computed against the origin, not incrementally. The gesture is
// modal: it owns move events until EndGesture.
type gestureState struct {
	kind      GestureKind
	elementID string
	start     Point
	originX   float64
	originY   float64
	originW   float64
	originH   float64
	originRot float64
}

// GestureActive reports whether a pointer gesture is in progress
func (s *Session) GestureActive() bool { return s.gesture != nil }

// BeginGesture starts a drag/resize/rotate on the given element at the
// pointer-down point. The element becomes the selection. Returns false for
// unknown ids and inert image elements; a gesture already in progress is
// replaced (a second pointer-down implies the first was lost).
func (s *Session) BeginGesture(kind GestureKind, id string, at Point) bool {
	if !s.Select(id) {
		return false
	}
	g := &gestureState{kind: kind, elementID: id, start: at}
	switch e := s.find(id).(type) {
	case *ImageElement:
		g.originX, g.originY = e.X, e.Y
		g.originW, g.originH = e.Width, e.Height
		g.originRot = e.Rotation
	case *TextElement:
		g.originX, g.originY = e.X, e.Y
		g.originRot = e.Rotation
	}
	s.gesture = g
	return true
}

// MoveGesture applies a pointer-move to the active gesture. No-op when no
// gesture is in progress or the target was deleted mid-gesture.
func (s *Session) MoveGesture(at Point) {
	g := s.gesture
	if g == nil {
		return
	}
	dx := at.X - g.start.X
	dy := at.Y - g.start.Y

	switch g.kind {
	case GestureDrag:
		s.UpdateElement(g.elementID, ElementPatch{
			X: float64Ptr(g.originX + dx),
			Y: float64Ptr(g.originY + dy),
		})
	case GestureResize:
		// Bottom-right handle: the box grows by the pointer delta. The
		// UpdateElement clamp rejects proposals under MinElementSize.
		s.UpdateElement(g.elementID, ElementPatch{
			Width:  float64Ptr(g.originW + dx),
			Height: float64Ptr(g.originH + dy),
		})
	case GestureRotate:
		cx := g.originX + g.originW/2
		cy := g.originY + g.originH/2
		a0 := math.Atan2(g.start.Y-cy, g.start.X-cx)
		a1 := math.Atan2(at.Y-cy, at.X-cx)
		deg := g.originRot + (a1-a0)*180/math.Pi
		s.UpdateElement(g.elementID, ElementPatch{Rotation: float64Ptr(deg)})
	}
}

// EndGesture ends the active gesture. Pointer-up anywhere, including outside
// every element, ends it cleanly; there is never orphaned drag state.
func (s *Session) EndGesture() {
	s.gesture = nil
}

// HitTest returns the id of the topmost interactable element containing the
// point, walking the z-order from top to bottom.
func (s *Session) HitTest(at Point) (string, bool) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		switch e := s.elements[i].(type) {
		case *ImageElement:
			if !e.Interactable() {
				continue
			}
			if at.X >= e.X && at.X <= e.X+e.Width && at.Y >= e.Y && at.Y <= e.Y+e.Height {
				return e.ID, true
			}
		case *TextElement:
			// Coarse box around the centered anchor; fine for picking.
			w := e.FontSizePx * 0.6 * float64(len(e.Text))
			h := e.FontSizePx * 1.2
			if at.X >= e.X-w/2 && at.X <= e.X+w/2 && at.Y >= e.Y-h/2 && at.Y <= e.Y+h/2 {
				return e.ID, true
			}
		}
	}
	return "", false
}

// ClickAt resolves a click: selects the topmost element under the point, or
// deselects when the click lands on empty canvas or the background layer.
func (s *Session) ClickAt(at Point) {
	if id, ok := s.HitTest(at); ok {
		s.Select(id)
		return
	}
	s.Deselect()
}
