package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	tpl, err := LookupTemplate("tshirt_front")
	require.NoError(t, err)
	return NewSession(tpl, "#1f2a44")
}

func testBitmap(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestAddImageElementFitsInsidePrintArea(t *testing.T) {
	s := newTestSession(t)

	// tshirt_front print area is 200x250 at (150,120); the fit box is 80%
	// of that, 160x200.
	el := s.AddImageElement(testBitmap(400, 400), "https://cdn.example.com/skull.png")

	assert.Equal(t, 160.0, el.Width)
	assert.Equal(t, 160.0, el.Height)
	// Centered in the print area, not in the fit box.
	assert.Equal(t, 170.0, el.X)
	assert.Equal(t, 165.0, el.Y)

	selected, ok := s.SelectedID()
	require.True(t, ok)
	assert.Equal(t, el.ID, selected)
}

func TestAddImageElementPreservesAspectRatio(t *testing.T) {
	s := newTestSession(t)

	el := s.AddImageElement(testBitmap(800, 200), "ref")

	assert.Equal(t, 160.0, el.Width)
	assert.Equal(t, 40.0, el.Height)
	assert.InDelta(t, 800.0/200.0, el.Width/el.Height, 1e-9)
}

func TestAddImageElementNeverUpscales(t *testing.T) {
	s := newTestSession(t)

	// A 50x40 source fits the 160x200 box with room to spare; it must keep
	// its native pixel dimensions instead of stretching.
	el := s.AddImageElement(testBitmap(50, 40), "ref")

	assert.Equal(t, 50.0, el.Width)
	assert.Equal(t, 40.0, el.Height)
	assert.Equal(t, 225.0, el.X)
	assert.Equal(t, 225.0, el.Y)
}

func TestAddImageElementWideSourcePlacement(t *testing.T) {
	s := newTestSession(t)

	// 1000x500 source against the 160x200 fit box: width-bound at 160,
	// 2:1 aspect kept, centered horizontally in the print area.
	el := s.AddImageElement(testBitmap(1000, 500), "ref")

	assert.Equal(t, 160.0, el.Width)
	assert.Equal(t, 80.0, el.Height)
	assert.InDelta(t, 2.0, el.Width/el.Height, 1e-9)
	assert.Equal(t, 150.0+(200.0-el.Width)/2, el.X)
	assert.Equal(t, 120.0+(250.0-el.Height)/2, el.Y)
}

func TestAddTextElementDefaults(t *testing.T) {
	s := newTestSession(t)

	el := s.AddTextElement()

	assert.Equal(t, "Your Text Here", el.Text)
	assert.Equal(t, 24.0, el.FontSizePx)
	assert.Equal(t, "Arial", el.FontFamily)
	assert.Equal(t, "#000000", el.FillColor)
	// Anchored at the print area's center.
	assert.Equal(t, 250.0, el.X)
	assert.Equal(t, 245.0, el.Y)

	selected, ok := s.SelectedID()
	require.True(t, ok)
	assert.Equal(t, el.ID, selected)
}

func TestSelectUnknownIDLeavesSelectionUnchanged(t *testing.T) {
	s := newTestSession(t)
	el := s.AddTextElement()

	assert.False(t, s.Select("no-such-element"))

	selected, ok := s.SelectedID()
	require.True(t, ok)
	assert.Equal(t, el.ID, selected)
}

func TestSelectInertImageElementFails(t *testing.T) {
	s := newTestSession(t)
	inert := &ImageElement{ID: "pending", SourceRef: "ref", Width: 100, Height: 100}
	s.elements = append(s.elements, inert)

	assert.False(t, s.Select("pending"))
	_, ok := s.SelectedID()
	assert.False(t, ok)
}

func TestUpdateElementStaleIDIsNoOp(t *testing.T) {
	s := newTestSession(t)
	el := s.AddTextElement()

	s.UpdateElement("deleted-earlier", ElementPatch{Text: strPtr("changed")})

	assert.Equal(t, "Your Text Here", el.Text)
}

func strPtr(s string) *string { return &s }

func TestResizeClampRejectsWholeBox(t *testing.T) {
	s := newTestSession(t)
	el := s.AddImageElement(testBitmap(400, 400), "ref")
	origX, origY := el.X, el.Y

	// A proposal with width under the minimum is rejected in full: the
	// position change rides along with the rejected box.
	s.UpdateElement(el.ID, ElementPatch{
		X:     float64Ptr(10),
		Width: float64Ptr(5),
	})

	assert.Equal(t, origX, el.X)
	assert.Equal(t, origY, el.Y)
	assert.Equal(t, 160.0, el.Width)
	assert.Equal(t, 160.0, el.Height)
}

func TestResizeClampAcceptsMinimumExactly(t *testing.T) {
	s := newTestSession(t)
	el := s.AddImageElement(testBitmap(400, 400), "ref")

	s.UpdateElement(el.ID, ElementPatch{
		Width:  float64Ptr(MinElementSize),
		Height: float64Ptr(MinElementSize),
	})

	assert.Equal(t, MinElementSize, el.Width)
	assert.Equal(t, MinElementSize, el.Height)
}

func TestRotationBypassesSizeClamp(t *testing.T) {
	s := newTestSession(t)
	el := s.AddImageElement(testBitmap(400, 400), "ref")

	// Rotation applies even when the geometry proposal in the same patch is
	// rejected.
	s.UpdateElement(el.ID, ElementPatch{
		Width:    float64Ptr(1),
		Rotation: float64Ptr(45),
	})

	assert.Equal(t, 160.0, el.Width)
	assert.Equal(t, 45.0, el.Rotation)
}

func TestUpdateTextElementIgnoresEmptyStyleValues(t *testing.T) {
	s := newTestSession(t)
	el := s.AddTextElement()

	empty := ""
	zero := 0.0
	s.UpdateElement(el.ID, ElementPatch{
		FontFamily: &empty,
		FillColor:  &empty,
		FontSizePx: &zero,
	})

	assert.Equal(t, "Arial", el.FontFamily)
	assert.Equal(t, "#000000", el.FillColor)
	assert.Equal(t, 24.0, el.FontSizePx)
}

func TestZOrderIsAppendOrder(t *testing.T) {
	s := newTestSession(t)
	first := s.AddTextElement()
	second := s.AddImageElement(testBitmap(100, 100), "ref")
	third := s.AddTextElement()

	els := s.Elements()
	require.Len(t, els, 3)
	assert.Equal(t, first.ID, els[0].ElementID())
	assert.Equal(t, second.ID, els[1].ElementID())
	assert.Equal(t, third.ID, els[2].ElementID())
}

func TestDeleteSelectedPreservesRemainingOrder(t *testing.T) {
	s := newTestSession(t)
	first := s.AddTextElement()
	second := s.AddTextElement()
	third := s.AddTextElement()

	require.True(t, s.Select(second.ID))
	s.DeleteSelected()

	els := s.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, first.ID, els[0].ElementID())
	assert.Equal(t, third.ID, els[1].ElementID())

	_, ok := s.SelectedID()
	assert.False(t, ok)

	// Deleting with nothing selected is a no-op.
	s.DeleteSelected()
	assert.Len(t, s.Elements(), 2)
}

func TestClearAllEmptiesSessionState(t *testing.T) {
	s := newTestSession(t)
	s.AddTextElement()
	s.AddImageElement(testBitmap(100, 100), "ref")
	require.True(t, s.BeginGesture(GestureDrag, s.elements[0].ElementID(), Point{X: 250, Y: 245}))

	s.ClearAll()

	assert.Empty(t, s.Elements())
	_, ok := s.SelectedID()
	assert.False(t, ok)
	assert.False(t, s.GestureActive())

	// Deleting after a clear is a quiet no-op.
	s.DeleteSelected()
	assert.Empty(t, s.Elements())
}
