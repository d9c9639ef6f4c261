package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smoothlife/telemetry"
)

// SpeciesLine is one species' row in the fitness readout.
type SpeciesLine struct {
	ID         int64
	Prey       bool
	Live       int
	Dead       int
	AvgFitness float64
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Drawing        bool
	Species        []SpeciesLine
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the title, run state and fitness readout at the top left.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	status := "Running"
	switch {
	case data.Paused:
		status = "PAUSED"
	case !data.Drawing:
		status = "Running (drawing off)"
	}
	rl.DrawText(status, 10, 55, 16, rl.Yellow)

	DrawFitnessInfo(10, 80, data.Tick, data.Species)
}

// DrawFitnessInfo prints the tick count and each species' average fitness.
func DrawFitnessInfo(x, y int32, tick int, species []SpeciesLine) int32 {
	rl.DrawText(fmt.Sprintf("Ticks: %d", tick), x, y, 14, rl.LightGray)
	y += 18
	for _, sp := range species {
		role := "predator"
		if sp.Prey {
			role = "prey"
		}
		rl.DrawText(
			fmt.Sprintf("Species %d (%s): avg fitness %s | live %d | dead %d",
				sp.ID, role, formatFitness(sp.AvgFitness), sp.Live, sp.Dead),
			x, y, 14, rl.LightGray,
		)
		y += 18
	}
	return y
}

// formatFitness keeps the readout short; an extinct species divides by zero.
func formatFitness(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	return fmt.Sprintf("%.1f", f)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the average tick time and each phase's share.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %dus | %.0f ticks/s", stats.AvgTickDuration.Microseconds(), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range []string{telemetry.PhaseMarkDead, telemetry.PhaseAct, telemetry.PhaseTelemetry} {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%  %dus", phase, pct, stats.PhaseAvg[phase].Microseconds()), x, y, 12, color)
		y += 14
	}
}
