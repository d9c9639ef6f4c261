package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sensor and action labels, in brain input and output order.
var (
	InputLabels  = []string{"Head cos", "Head sin", "Foe dx", "Foe dy", "Foe dist", "Kin dx", "Kin dy", "Kin dist"}
	OutputLabels = []string{"Left", "Right", "Move", "Special"}
)

// InspectorData holds what the inspector shows about one blob.
type InspectorData struct {
	SpeciesID     int64
	Prey          bool
	Energy        float64
	InitialEnergy float64
	Age           int
	X, Y          float64
	Angle         float64
	Radius        float64
	Color         rl.Color
	WasAttacked   bool
	PoolFitness   float64
	Inputs        []float64
	Outputs       []float64
	Threshold     float64
	Actions       []string
}

// Inspector renders the selected blob's panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel and returns the y coordinate below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	lines := int32(12 + len(data.Inputs) + len(data.Outputs))
	r.DrawPanel(ins.x, ins.y, ins.width, lines*(r.Theme.LineHeight+2)+padding*2)

	x := ins.x + padding
	y := ins.y + padding
	width := ins.width - padding*2

	role := "Predator"
	if data.Prey {
		role = "Prey"
	}
	rl.DrawText(fmt.Sprintf("%s (species %d)", role, data.SpeciesID), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	y = r.DrawSectionHeader(x, y, "State")
	y = r.DrawEnergyBar(x, y, "Energy", float32(data.Energy), float32(data.InitialEnergy), width)
	y = r.DrawLabelValue(x, y, "Age", fmt.Sprintf("%d", data.Age))
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", data.X, data.Y))
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.0f", data.Radius))
	y = r.DrawColorSwatch(x, y, "Genome", data.Color)
	y = r.DrawLabelValue(x, y, "Pool fit", fmt.Sprintf("%.0f", data.PoolFitness))
	if data.WasAttacked {
		rl.DrawText("attacked", x, y, r.Theme.FontSize, r.Theme.BarFillLow)
		y += r.Theme.LineHeight
	}

	y = r.DrawSectionHeader(x, y+4, "Sensors")
	for i, v := range data.Inputs {
		y = r.DrawSignedBar(x, y, label(InputLabels, i), float32(v), width)
	}

	y = r.DrawSectionHeader(x, y+4, fmt.Sprintf("Outputs (fire > %.2f)", data.Threshold))
	for i, v := range data.Outputs {
		y = r.DrawOutputBar(x, y, label(OutputLabels, i), float32(v), float32(data.Threshold), width)
	}

	actions := "none"
	if len(data.Actions) > 0 {
		actions = strings.Join(data.Actions, ", ")
	}
	return r.DrawLabelValue(x, y+4, "Actions", actions)
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i)
}
