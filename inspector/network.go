// Package inspector draws a blob's brain as a layered node diagram.
package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NetworkColors for activation visualization.
var (
	ColorNodePositive = rl.Color{R: 255, G: 100, B: 100, A: 255}
	ColorNodeNegative = rl.Color{R: 100, G: 100, B: 255, A: 255}
	ColorNodeOutline  = rl.Color{R: 100, G: 100, B: 100, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// Edges lighter than this are not drawn.
const edgeCutoff = 0.1

// Network is what the diagram needs: the layer sizes, the flat weight
// vector (per layer, per neuron, bias first then one weight per input) and
// one activation vector per layer.
type Network struct {
	Layout       []int
	Weights      []float64
	Layers       [][]float64
	InputLabels  []string
	OutputLabels []string
}

// DrawNetworkDiagram renders the network into the given rectangle, one
// column per layer.
func DrawNetworkDiagram(x, y, width, height int32, net Network) {
	if len(net.Layout) < 2 || len(net.Layers) != len(net.Layout) {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	nodes := nodePositions(x, y, width, height, net.Layout)
	nodeRadius := float32(5)

	// Weights are consumed in layer order; a short vector just stops early.
	w := 0
	for l := 1; l < len(net.Layout); l++ {
		for n := 0; n < net.Layout[l]; n++ {
			w++ // bias
			for i := 0; i < net.Layout[l-1]; i++ {
				if w >= len(net.Weights) {
					break
				}
				weight := net.Weights[w]
				w++
				if math.Abs(weight) < edgeCutoff {
					continue
				}
				drawEdge(nodes[l-1][i], nodes[l][n], weight)
			}
		}
	}

	last := len(net.Layout) - 1
	for l, column := range nodes {
		radius := nodeRadius
		if l == last {
			radius += 2
		}
		for i, pos := range column {
			var act float64
			if i < len(net.Layers[l]) {
				act = net.Layers[l][i]
			}
			drawNode(pos, radius, act)

			switch {
			case l == 0 && i < len(net.InputLabels):
				lw := rl.MeasureText(net.InputLabels[i], 10)
				rl.DrawText(net.InputLabels[i], int32(pos.X-radius)-lw-4, int32(pos.Y)-5, 10, ColorLabelDim)
			case l == last && i < len(net.OutputLabels):
				rl.DrawText(net.OutputLabels[i], int32(pos.X+radius+6), int32(pos.Y)-5, 10, ColorLabelDim)
			}
		}
	}
}

// nodePositions lays each layer out as a vertically centered column.
func nodePositions(x, y, width, height int32, layout []int) [][]rl.Vector2 {
	colWidth := float32(width) / float32(len(layout))
	usable := float32(height - 20)

	widest := 0
	for _, n := range layout {
		widest = max(widest, n)
	}
	spacing := usable / float32(widest)

	nodes := make([][]rl.Vector2, len(layout))
	for l, n := range layout {
		colX := float32(x) + colWidth*float32(l) + colWidth/2
		offset := (usable - float32(n)*spacing) / 2
		nodes[l] = make([]rl.Vector2, n)
		for i := range n {
			nodes[l][i] = rl.Vector2{X: colX, Y: float32(y) + 10 + offset + float32(i)*spacing + spacing/2}
		}
	}
	return nodes
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius float32, activation float64) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, ColorNodeOutline)
}

// drawEdge renders a connection between nodes.
func drawEdge(from, to rl.Vector2, weight float64) {
	mag := float32(math.Abs(weight))
	thickness := min(max(mag*1.5, 0.5), 3)

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+mag*40, 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float64) rl.Color {
	t := float32(min(math.Abs(activation), 1))
	if activation > 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}
