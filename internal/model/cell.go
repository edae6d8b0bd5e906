package model

// CellKind identifies which variant a Cell holds
type CellKind string

const (
	CellNone     CellKind = ""         // Sentinel returned for out-of-bounds reads
	CellCorner   CellKind = "corner"   // The four grid corners
	CellEdge     CellKind = "edge"     // Border cells where rays are fired
	CellInterior CellKind = "interior" // Cells that may hold markers
)

// Direction is the inward direction a ray fired from an edge cell travels
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// RayResult is the outcome of tracing a ray through the board
type RayResult string

const (
	RayUnset   RayResult = ""
	RayHit     RayResult = "hit"     // Absorbed by a marker directly ahead
	RayReflect RayResult = "reflect" // Sent back out of its entry cell
	RayPass    RayResult = "pass"    // Left the board through another edge cell
)

// Cell is a tagged variant over corner, edge and interior cells.
// Only the fields belonging to Kind are meaningful.
type Cell struct {
	Kind CellKind

	// Edge fields
	Direction Direction
	HasRay    bool      // Player has fired from or through this cell
	RayResult RayResult // Memoized outcome, RayUnset until computed
	RayExit   *Position // Paired cell; equals own position for hit and reflect

	// Interior fields
	HasBall  bool // Hidden marker
	HasGuess bool // Player's guess marker
}

// IsEdge returns true for edge cells
func (c Cell) IsEdge() bool {
	return c.Kind == CellEdge
}

// IsInterior returns true for interior cells
func (c Cell) IsInterior() bool {
	return c.Kind == CellInterior
}

// HasPath returns true once the edge cell's ray result has been memoized
func (c Cell) HasPath() bool {
	return c.RayResult != RayUnset && c.RayExit != nil
}

// RayShot is the externally visible result of firing a ray
type RayShot struct {
	Result RayResult
	Entry  Position
	Exit   Position
}
