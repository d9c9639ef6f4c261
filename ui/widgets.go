package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// valueGutter is the width reserved right of a bar for its number.
const valueGutter = 50

// Renderer draws themed panel rows. Every row method returns the y of the
// next row.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.label(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawColorSwatch shows a genome colour next to its label.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, c rl.Color) int32 {
	r.label(x, y, label)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, r.Theme.BarHeight, r.Theme.BarHeight, c)
	return y + r.Theme.LineHeight
}

// DrawEnergyBar fills by current/full. Attack payoffs can push energy past
// full, so the fill is clamped but the text is not.
func (r *Renderer) DrawEnergyBar(x, y int32, label string, current, full float32, width int32) int32 {
	ratio := float32(0)
	if full > 0 {
		ratio = clamp01(current / full)
	}

	fill := r.Theme.BarFillHigh
	switch {
	case ratio < 0.3:
		fill = r.Theme.BarFillLow
	case ratio < 0.6:
		fill = r.Theme.BarFillMedium
	}

	bx, bw := r.track(x, y, label, width-30)
	rl.DrawRectangle(bx, y+2, int32(float32(bw)*ratio), r.Theme.BarHeight, fill)
	r.value(bx+bw, y, fmt.Sprintf("%.0f", current))
	return y + r.Theme.LineHeight + 2
}

// DrawSignedBar draws a sensor value in [-1, 1] growing out of the centre.
func (r *Renderer) DrawSignedBar(x, y int32, label string, v float32, width int32) int32 {
	bx, bw := r.track(x, y, label, width)
	mid := bx + bw/2
	rl.DrawLine(mid, y+2, mid, y+2+r.Theme.BarHeight, r.Theme.PanelBorder)

	half := int32(float32(bw/2) * clamp01(abs32(v)))
	if v < 0 {
		rl.DrawRectangle(mid-half, y+2, half, r.Theme.BarHeight, r.Theme.BarFillNegative)
	} else {
		rl.DrawRectangle(mid, y+2, half, r.Theme.BarHeight, r.Theme.BarFillPositive)
	}
	r.value(bx+bw, y, fmt.Sprintf("%+.2f", v))
	return y + r.Theme.LineHeight + 2
}

// DrawOutputBar draws a brain output in [0, 1] with a tick at the action
// threshold. Outputs above it are drawn in the firing colour.
func (r *Renderer) DrawOutputBar(x, y int32, label string, v, threshold float32, width int32) int32 {
	bx, bw := r.track(x, y, label, width)

	fill := r.Theme.BarFill
	if v > threshold {
		fill = r.Theme.BarFillHigh
	}
	rl.DrawRectangle(bx, y+2, int32(float32(bw)*clamp01(v)), r.Theme.BarHeight, fill)

	tx := bx + int32(float32(bw)*clamp01(threshold))
	rl.DrawLine(tx, y, tx, y+4+r.Theme.BarHeight, r.Theme.SectionHeader)
	r.value(bx+bw, y, fmt.Sprintf("%.2f", v))
	return y + r.Theme.LineHeight + 2
}

func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// track draws the label and an empty bar, returning the bar's x and width.
func (r *Renderer) track(x, y int32, label string, width int32) (int32, int32) {
	r.label(x, y, label)
	bx := x + r.Theme.LabelWidth
	bw := width - r.Theme.LabelWidth - valueGutter
	rl.DrawRectangle(bx, y+2, bw, r.Theme.BarHeight, r.Theme.BarBg)
	return bx, bw
}

func (r *Renderer) value(x, y int32, text string) {
	rl.DrawText(text, x+5, y, r.Theme.FontSize, r.Theme.ValueColor)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
