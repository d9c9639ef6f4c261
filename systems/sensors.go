package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/smoothlife/components"
)

// Action is one discrete thing a blob can do in a tick.
type Action uint8

const (
	TurnLeft Action = iota
	TurnRight
	MoveForward
	Special

	actionCount
)

func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case MoveForward:
		return "move_forward"
	case Special:
		return "special"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Sensor layout: heading (cos, sin) then foe and friend as (dirX, dirY, dist).
const (
	InputCount  = 2 + 2*neighborInputs
	OutputCount = int(actionCount)

	neighborInputs = 3
)

// ErrBrainShape means a brain does not match the sensor/action layout.
var ErrBrainShape = errors.New("brain does not match sensor layout")

// Brain is the inference side of a neural network.
type Brain interface {
	InputCount() int
	OutputCount() int
	Infer(input []float64) ([]float64, error)
}

// Sensing holds the bridge constants.
type Sensing struct {
	RangeScale float64 // distance that maps to 1.0
	Threshold  float64 // outputs above this fire their action
}

// CheckBrain verifies that brain takes InputCount inputs and yields OutputCount outputs.
func CheckBrain(brain Brain) error {
	if brain.InputCount() != InputCount || brain.OutputCount() != OutputCount {
		return fmt.Errorf("%w: got %d->%d, want %d->%d",
			ErrBrainShape, brain.InputCount(), brain.OutputCount(), InputCount, OutputCount)
	}
	return nil
}

// EncodeInputs fills dst (length InputCount) from self and its nearest
// friend and foe. A nil neighbor leaves its slots at zero.
func EncodeInputs(dst []float64, self, friend, foe *components.Body, rangeScale float64) {
	dst[0] = math.Cos(self.Angle())
	dst[1] = math.Sin(self.Angle())
	encodeNeighbor(dst[2:2+neighborInputs], self, foe, rangeScale)
	encodeNeighbor(dst[2+neighborInputs:], self, friend, rangeScale)
}

// encodeNeighbor writes the unit vector from other to self and the scaled distance.
func encodeNeighbor(dst []float64, self, other *components.Body, rangeScale float64) {
	for i := range dst {
		dst[i] = 0
	}
	if other == nil {
		return
	}

	relX := self.X() - other.X()
	relY := self.Y() - other.Y()
	dist := math.Hypot(relX, relY)
	if dist > 0 {
		dst[0] = relX / dist
		dst[1] = relY / dist
	}
	dst[2] = dist / rangeScale
}

// DecodeActions appends to dst every action whose output exceeds threshold,
// in action order.
func DecodeActions(dst []Action, outputs []float64, threshold float64) []Action {
	for i, v := range outputs {
		if v > threshold {
			dst = append(dst, Action(i))
		}
	}
	return dst
}

// Stimulate runs one sense-think step and appends the chosen actions to dst.
func Stimulate(brain Brain, dst []Action, self, friend, foe *components.Body, s Sensing) ([]Action, error) {
	if err := CheckBrain(brain); err != nil {
		return dst, err
	}

	var in [InputCount]float64
	EncodeInputs(in[:], self, friend, foe, s.RangeScale)

	out, err := brain.Infer(in[:])
	if err != nil {
		return dst, err
	}
	return DecodeActions(dst, out, s.Threshold), nil
}
