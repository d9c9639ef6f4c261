// Package viewer is the raylib window around a game.Game: camera, blob
// drawing, HUD, controls and the blob inspector.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smoothlife/camera"
	"github.com/pthm-cable/smoothlife/game"
	"github.com/pthm-cable/smoothlife/ui"
)

const (
	panelWidth     = 260
	inspectorWidth = 280
	diagramHeight  = 220
	inspectorTop   = 150 // below the HUD text
)

// Viewer renders a game and turns window input into game controls.
type Viewer struct {
	game *game.Game

	screenWidth  float32
	screenHeight float32

	camera    *camera.Camera
	hud       *ui.HUD
	controls  ui.Controls
	panel     *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector
	overlays  *ui.OverlayRegistry

	showPerf bool
	selected *game.Blob
}

// New builds a viewer for g. The raylib window must already be open.
func New(g *game.Game) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	world := g.World()

	return &Viewer{
		game:         g,
		screenWidth:  w,
		screenHeight: h,
		camera:       camera.New(w, h, float32(world.Width()), float32(world.Height())),
		hud:          ui.NewHUD(),
		controls: ui.Controls{
			Drawing:        true,
			StepsPerUpdate: min(g.StepsPerUpdate(), ui.MaxStepsPerUpdate),
		},
		panel:     ui.NewControlsPanel(int32(w)-panelWidth-10, 10, panelWidth),
		perfPanel: ui.NewPerfPanel(10, int32(h)-120),
		inspector: ui.NewInspector(10, inspectorTop, inspectorWidth),
		overlays:  ui.NewOverlayRegistry(),
	}
}

// Update handles input and advances the game unless paused.
func (v *Viewer) Update() error {
	v.handleInput()
	v.game.RecordFrame()

	if v.controls.Paused {
		return nil
	}
	if err := v.game.Advance(v.controls.StepsPerUpdate); err != nil {
		return err
	}

	// Selected blobs are recycled on death, so the pointer can outlive the blob.
	if v.selected != nil && !v.selected.Alive() {
		v.selected = nil
	}
	return nil
}
