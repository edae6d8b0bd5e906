// Package raytrace walks a ray across a Black Box board.
//
// A ray is a position plus a heading (axis and signed step). Each step looks
// at three cells one step further along the axis: the cell directly ahead and
// its two neighbours across the axis. Rules are evaluated in a fixed order:
//
//   - a marker directly ahead absorbs the ray (hit)
//   - markers on both neighbours turn the ray back (reflect)
//   - a marker on one neighbour turns the ray onto the other axis, moving
//     away from the marker; on the entry cell there is no room to turn, so
//     the ray reflects instead
//   - otherwise the ray advances one cell
//
// A ray that advances past the last interior cell leaves the board (pass).
// Hit and reflect report the original entry cell as their exit.
package raytrace

import (
	"github.com/mcoot/blackbox-go/internal/model"
)

// Axis is the axis a ray is travelling along
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// other returns the perpendicular axis
func (a Axis) other() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// offset moves pos by along on this axis and by across on the other one
func (a Axis) offset(pos model.Position, along, across int) model.Position {
	if a == Vertical {
		return model.Position{Row: pos.Row + along, Col: pos.Col + across}
	}
	return model.Position{Row: pos.Row + across, Col: pos.Col + along}
}

// index returns the coordinate of pos that changes when moving along this axis
func (a Axis) index(pos model.Position) int {
	if a == Vertical {
		return pos.Row
	}
	return pos.Col
}

// Heading is a travel axis and a signed unit step along it
type Heading struct {
	Axis Axis
	Step int // +1 towards the far edge, -1 towards index 0
}

func (h Heading) valid() bool {
	return (h.Axis == Vertical || h.Axis == Horizontal) && (h.Step == 1 || h.Step == -1)
}

// HeadingFor returns the heading of a ray fired inwards from an edge facing d
func HeadingFor(d model.Direction) (Heading, error) {
	switch d {
	case model.DirectionUp:
		return Heading{Axis: Vertical, Step: -1}, nil
	case model.DirectionDown:
		return Heading{Axis: Vertical, Step: 1}, nil
	case model.DirectionLeft:
		return Heading{Axis: Horizontal, Step: -1}, nil
	case model.DirectionRight:
		return Heading{Axis: Horizontal, Step: 1}, nil
	default:
		return Heading{}, model.ErrInvalidHeading
	}
}

// Outcome is the terminal state of a traced ray
type Outcome struct {
	Result model.RayResult
	Entry  model.Position
	Exit   model.Position
}

// ray is the simulation state
type ray struct {
	pos     model.Position
	heading Heading
}

// inside reports whether the ray may still advance without leaving the board
func (r ray) inside(side int) bool {
	idx := r.heading.Axis.index(r.pos)
	if r.heading.Step < 0 {
		return idx > 0
	}
	return idx < side-1
}

// lookahead returns the cell directly ahead and its left and right neighbours
func (r ray) lookahead() (ahead, left, right model.Position) {
	axis, step := r.heading.Axis, r.heading.Step
	return axis.offset(r.pos, step, 0), axis.offset(r.pos, step, -1), axis.offset(r.pos, step, 1)
}

// transition is what a single step does to the ray
type transition int

const (
	advance transition = iota
	deflect
	absorb
	bounce
)

// step applies the rules to the ray's current cell. For deflect the new heading is returned.
func step(b *model.Board, r ray) (transition, Heading) {
	ahead, left, right := r.lookahead()
	leftBall, rightBall := b.HasBall(left), b.HasBall(right)

	switch {
	case b.HasBall(ahead):
		return absorb, r.heading
	case leftBall && rightBall:
		return bounce, r.heading
	case leftBall:
		return turn(b, r, 1)
	case rightBall:
		return turn(b, r, -1)
	default:
		return advance, r.heading
	}
}

func turn(b *model.Board, r ray, newStep int) (transition, Heading) {
	if b.IsEdge(r.pos) {
		return bounce, r.heading
	}
	return deflect, Heading{Axis: r.heading.Axis.other(), Step: newStep}
}

// Trace simulates a ray entering at entry with the given heading
func Trace(b *model.Board, entry model.Position, heading Heading) (Outcome, error) {
	if !b.IsValidPosition(entry) {
		return Outcome{}, model.ErrInvalidPosition
	}
	if !heading.valid() {
		return Outcome{}, model.ErrInvalidHeading
	}

	r := ray{pos: entry, heading: heading}
	turns := make(map[ray]bool)

	for r.inside(b.Side) {
		t, next := step(b, r)
		switch t {
		case absorb:
			return Outcome{Result: model.RayHit, Entry: entry, Exit: entry}, nil
		case bounce:
			return Outcome{Result: model.RayReflect, Entry: entry, Exit: entry}, nil
		case deflect:
			r.heading = next
			// A repeated turn means the ray is trapped between markers
			if turns[r] {
				return Outcome{Result: model.RayReflect, Entry: entry, Exit: entry}, nil
			}
			turns[r] = true
		case advance:
			r.pos = r.heading.Axis.offset(r.pos, r.heading.Step, 0)
		}
	}

	return Outcome{Result: model.RayPass, Entry: entry, Exit: r.pos}, nil
}

// TraceEdge simulates a ray fired from an edge cell in its inward direction
func TraceEdge(b *model.Board, pos model.Position) (Outcome, error) {
	if !b.IsValidPosition(pos) {
		return Outcome{}, model.ErrInvalidPosition
	}
	cell := b.Get(pos)
	if !cell.IsEdge() {
		return Outcome{}, model.ErrNotEdgeCell
	}
	heading, err := HeadingFor(cell.Direction)
	if err != nil {
		return Outcome{}, err
	}
	return Trace(b, pos, heading)
}
