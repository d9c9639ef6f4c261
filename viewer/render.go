package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smoothlife/game"
	"github.com/pthm-cable/smoothlife/inspector"
	"github.com/pthm-cable/smoothlife/renderer"
	"github.com/pthm-cable/smoothlife/systems"
	"github.com/pthm-cable/smoothlife/ui"
)

var (
	colorPrey      = rl.Color{R: 80, G: 200, B: 120, A: 255}
	colorPredator  = rl.Color{R: 220, G: 70, B: 60, A: 255}
	colorSelection = rl.Yellow
	colorFriend    = rl.Color{R: 120, G: 220, B: 140, A: 200}
	colorFoe       = rl.Color{R: 240, G: 90, B: 90, A: 200}
)

const controlsLegend = "[Space] Pause  [D] Drawing  [<>] Speed  [Tab] Panel  [P] Perf  [S] Snapshot  [Arrows/Wheel] Camera  [Click] Inspect"

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if v.controls.Drawing {
		v.drawWorld()
	} else {
		rl.ClearBackground(renderer.ColorBackground)
	}
	v.drawUI()
}

func (v *Viewer) drawWorld() {
	world := v.game.World()
	x0, y0 := v.camera.WorldToScreen(0, 0)
	x1, y1 := v.camera.WorldToScreen(float32(world.Width()), float32(world.Height()))
	renderer.DrawWorldArea(x0, y0, x1-x0, y1-y0)
	if v.overlays.IsEnabled(ui.OverlayWorldBounds) {
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, rl.White)
	}

	for i := 0; i < world.SpeciesCount(); i++ {
		sp := world.Species(i)
		for j := 0; j < sp.LiveCount(); j++ {
			v.drawBlob(sp.Blob(j))
		}
	}

	if v.selected != nil {
		v.drawSelection(v.selected)
	}
}

func (v *Viewer) drawBlob(b *game.Blob) {
	body := b.Body()
	if !v.camera.IsVisible(float32(body.X()), float32(body.Y()), float32(body.Radius())) {
		return
	}
	sx, sy := v.camera.WorldToScreen(float32(body.X()), float32(body.Y()))

	renderer.DrawBlob(renderer.BlobStyle{
		X:          sx,
		Y:          sy,
		Radius:     v.camera.Scale(float32(body.Radius())),
		Scale:      v.camera.Zoom,
		Angle:      body.Angle(),
		Fill:       v.blobColor(b),
		Prey:       b.Prey(),
		Attacked:   b.WasAttacked(),
		Special:    b.HasAction(systems.Special),
		Wedge:      v.overlays.IsEnabled(ui.OverlayViewWedge),
		InnerState: v.overlays.IsEnabled(ui.OverlayActions),
	})
}

func (v *Viewer) blobColor(b *game.Blob) rl.Color {
	switch {
	case v.overlays.IsEnabled(ui.OverlayRoleColors):
		if b.Prey() {
			return colorPrey
		}
		return colorPredator
	case v.overlays.IsEnabled(ui.OverlayEnergyColors):
		return renderer.HeatColor(b.Energy() / v.game.Config().Blob.InitialEnergy)
	}
	return rl.Color(b.Color())
}

// drawSelection rings the selected blob and draws its perception overlays.
func (v *Viewer) drawSelection(b *game.Blob) {
	body := b.Body()
	sx, sy := v.camera.WorldToScreen(float32(body.X()), float32(body.Y()))
	r := v.camera.Scale(float32(body.Radius()))
	renderer.DrawRangeRing(sx, sy, r+4, colorSelection)

	finder := v.game.World().Finder()
	if v.overlays.IsEnabled(ui.OverlayNeighborLinks) {
		for _, n := range []struct {
			blob  *game.Blob
			color rl.Color
		}{
			{finder.ClosestFriend(b), colorFriend},
			{finder.ClosestFoe(b), colorFoe},
		} {
			if n.blob == nil {
				continue
			}
			other := n.blob.Body()
			ox, oy := v.camera.WorldToScreen(float32(other.X()), float32(other.Y()))
			renderer.DrawLink(sx, sy, ox, oy, n.color)
		}
	}

	if v.overlays.IsEnabled(ui.OverlayAttackRange) {
		blobCfg := v.game.Config().Blob
		reach := blobCfg.AttackRange
		if b.Prey() {
			reach = blobCfg.GroupRange
		}
		// Range counts from the body edge of a touching neighbour.
		renderer.DrawRangeRing(sx, sy, r+v.camera.Scale(float32(reach)), colorSelection)
	}
}

func (v *Viewer) drawUI() {
	world := v.game.World()
	lines := make([]ui.SpeciesLine, 0, world.SpeciesCount())
	for i := 0; i < world.SpeciesCount(); i++ {
		sp := world.Species(i)
		lines = append(lines, ui.SpeciesLine{
			ID:         sp.ID(),
			Prey:       sp.Prey(),
			Live:       sp.LiveCount(),
			Dead:       sp.DeadCount(),
			AvgFitness: sp.AverageFitness(),
		})
	}

	v.hud.Draw(ui.HUDData{
		Title:          "Smooth Life",
		Tick:           v.game.Tick(),
		StepsPerUpdate: v.controls.StepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         v.controls.Paused,
		Drawing:        v.controls.Drawing,
		Species:        lines,
	})
	v.panel.Draw(&v.controls, v.overlays)

	if v.showPerf {
		v.perfPanel.Draw(v.game.PerfStats())
	}
	if v.selected != nil {
		v.drawInspector(v.selected)
	}
	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)
}

func (v *Viewer) drawInspector(b *game.Blob) {
	probe, err := b.Probe()
	if err != nil {
		slog.Error("failed to probe blob", "species", b.SpeciesID(), "error", err)
		v.selected = nil
		return
	}

	body := b.Body()
	var poolFitness float64
	if old, err := b.PoolGenome(); err == nil {
		poolFitness = old.Fitness()
	}
	actions := make([]string, 0, systems.OutputCount)
	for _, a := range b.Actions() {
		actions = append(actions, a.String())
	}

	cfg := v.game.Config()
	y := v.inspector.Draw(ui.InspectorData{
		SpeciesID:     b.SpeciesID(),
		Prey:          b.Prey(),
		Energy:        b.Energy(),
		InitialEnergy: cfg.Blob.InitialEnergy,
		Age:           b.Age(),
		X:             body.X(),
		Y:             body.Y(),
		Angle:         body.Angle(),
		Radius:        body.Radius(),
		Color:         rl.Color(b.Color()),
		WasAttacked:   b.WasAttacked(),
		PoolFitness:   poolFitness,
		Inputs:        probe.Layers[0],
		Outputs:       probe.Layers[len(probe.Layers)-1],
		Threshold:     cfg.Sensors.ActionThreshold,
		Actions:       actions,
	})

	// Input labels are drawn left of the first column.
	inspector.DrawNetworkDiagram(70, y+10, inspectorWidth+140, diagramHeight, inspector.Network{
		Layout:       probe.Layout,
		Weights:      probe.Weights,
		Layers:       probe.Layers,
		InputLabels:  ui.InputLabels,
		OutputLabels: ui.OutputLabels,
	})
}
