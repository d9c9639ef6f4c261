package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) <= 0.01 }

func TestNewFitsWorld(t *testing.T) {
	cam := New(1600, 900, 800, 600)

	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected camera at (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	// min(1600/800, 900/600) = 1.5
	if !near(cam.Zoom, 1.5) {
		t.Errorf("expected fit zoom 1.5, got %f", cam.Zoom)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minY > 0 || maxY < 600 || minX > 0 || maxX < 800 {
		t.Errorf("world not fully visible: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(800, 600, 800, 600)

	sx, sy := cam.WorldToScreen(400, 300)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}
	if got := cam.Scale(10); !near(got, 10) {
		t.Errorf("Scale(10) = %f at zoom 1", got)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 800, 600)
	cam.Pan(37, -12)
	cam.ZoomBy(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanDoesNotWrap(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Pan(-1000, 0)

	if cam.X != -600 {
		t.Errorf("expected X = -600, got %f", cam.X)
	}
	// A blob that wandered off the left edge is now on screen.
	if !cam.IsVisible(-500, 300, 8) {
		t.Error("off-world blob should be visible after panning")
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.SetZoom(0.01)
	if !near(cam.Zoom, 0.25) {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2) // visible (200,150)-(600,450)

	if !cam.IsVisible(400, 300, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(700, 500, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(180, 300, 30) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.X = 5
	cam.Y = 5
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected position (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(0.25)
	cam.Resize(3200, 2400)

	// New fit zoom is 4, so the floor is 1.
	if cam.Zoom != 1 {
		t.Errorf("expected zoom raised to 1, got %f", cam.Zoom)
	}
}
