package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerUpdate bounds the speed slider.
const MaxStepsPerUpdate = 50

// Controls is the state the controls panel edits.
type Controls struct {
	Drawing        bool
	Paused         bool
	StepsPerUpdate int
}

// ControlsPanel renders the raygui controls: drawing toggle, pause, speed
// and one checkbox per overlay.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel, applies clicks to ctl and overlays, and returns
// the y coordinate below the panel.
func (c *ControlsPanel) Draw(ctl *Controls, overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)
	x := float32(c.x + padding)

	descs := overlays.All()
	panelHeight := 3*(lineHeight+12) + int32(len(descs))*(lineHeight+4) + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// The viewer can stop drawing to let the simulation run at full speed.
	drawLabel := "Stop drawing"
	if !ctl.Drawing {
		drawLabel = "Start drawing"
	}
	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 22}, drawLabel) {
		ctl.Drawing = !ctl.Drawing
	}
	pauseLabel := "Pause"
	if ctl.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 22}, pauseLabel) {
		ctl.Paused = !ctl.Paused
	}
	y += lineHeight + 12

	rl.DrawText(fmt.Sprintf("Steps per frame: %d", ctl.StepsPerUpdate), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	steps := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: float32(y), Width: inner - 40, Height: 14},
		"1", fmt.Sprint(MaxStepsPerUpdate),
		float32(ctl.StepsPerUpdate), 1, MaxStepsPerUpdate,
	)
	ctl.StepsPerUpdate = max(1, int(steps+0.5))
	y += lineHeight + 12

	y = r.DrawSectionHeader(c.x+padding, y, "Overlays")
	for _, desc := range descs {
		label := desc.Name
		if desc.KeyLabel != "" {
			label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		}
		enabled := overlays.IsEnabled(desc.ID)
		if gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, label, enabled) != enabled {
			overlays.Toggle(desc.ID)
		}
		y += lineHeight + 4
	}

	return y + padding
}
