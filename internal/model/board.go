package model

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Board is the square puzzle grid, including its border of edge cells
type Board struct {
	Dimension int      // Interior width and height (difficulty parameter)
	Side      int      // Dimension + 2
	Cells     [][]Cell // Row-major: Cells[row][col]
}

// noMarker is returned for reads outside the grid. It is handed out by value
// so it can never be written back into a board.
var noMarker = Cell{Kind: CellNone}

// MarkerTarget returns the number of hidden markers on a board of the given dimension
func MarkerTarget(dimension int) int {
	return dimension / 2
}

// NewBoard allocates a board and classifies every cell as corner, edge or interior
func NewBoard(dimension int) (*Board, error) {
	if dimension < 1 {
		return nil, ErrInvalidDimension
	}

	side := dimension + 2
	last := side - 1
	cells := make([][]Cell, side)
	for row := range cells {
		cells[row] = make([]Cell, side)
		for col := range cells[row] {
			cells[row][col] = classify(row, col, last)
		}
	}

	return &Board{
		Dimension: dimension,
		Side:      side,
		Cells:     cells,
	}, nil
}

func classify(row, col, last int) Cell {
	onRowBorder := row == 0 || row == last
	onColBorder := col == 0 || col == last

	switch {
	case onRowBorder && onColBorder:
		return Cell{Kind: CellCorner}
	case col == 0:
		return Cell{Kind: CellEdge, Direction: DirectionRight}
	case col == last:
		return Cell{Kind: CellEdge, Direction: DirectionLeft}
	case row == 0:
		return Cell{Kind: CellEdge, Direction: DirectionDown}
	case row == last:
		return Cell{Kind: CellEdge, Direction: DirectionUp}
	default:
		return Cell{Kind: CellInterior}
	}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Side && pos.Col >= 0 && pos.Col < b.Side
}

// Get returns a copy of the cell at the given position, or an inert
// sentinel without a marker if the position is out of bounds
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return noMarker
	}
	return b.Cells[pos.Row][pos.Col]
}

// Ref returns the stored cell for in-place updates, or nil if out of bounds
func (b *Board) Ref(pos Position) *Cell {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return &b.Cells[pos.Row][pos.Col]
}

// HasBall reports whether a marker is hidden at the position
func (b *Board) HasBall(pos Position) bool {
	return b.Get(pos).HasBall
}

// IsEdge reports whether the position holds an edge cell
func (b *Board) IsEdge(pos Position) bool {
	return b.Get(pos).IsEdge()
}

// EdgePositions returns every edge cell in row-major order
func (b *Board) EdgePositions() []Position {
	return b.positions(func(c Cell) bool { return c.IsEdge() })
}

// InteriorPositions returns every interior cell in row-major order
func (b *Board) InteriorPositions() []Position {
	return b.positions(func(c Cell) bool { return c.IsInterior() })
}

// Markers returns the positions of all hidden markers
func (b *Board) Markers() []Position {
	return b.positions(func(c Cell) bool { return c.IsInterior() && c.HasBall })
}

// Guesses returns the positions of all guess markers
func (b *Board) Guesses() []Position {
	return b.positions(func(c Cell) bool { return c.IsInterior() && c.HasGuess })
}

// MarkerCount returns the number of hidden markers
func (b *Board) MarkerCount() int {
	return len(b.Markers())
}

func (b *Board) positions(match func(Cell) bool) []Position {
	var result []Position
	for row := 0; row < b.Side; row++ {
		for col := 0; col < b.Side; col++ {
			if match(b.Cells[row][col]) {
				result = append(result, Position{Row: row, Col: col})
			}
		}
	}
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]Cell, len(b.Cells))
	for row := range b.Cells {
		cells[row] = make([]Cell, len(b.Cells[row]))
		copy(cells[row], b.Cells[row])
		for col := range cells[row] {
			if exit := cells[row][col].RayExit; exit != nil {
				e := *exit
				cells[row][col].RayExit = &e
			}
		}
	}
	return &Board{
		Dimension: b.Dimension,
		Side:      b.Side,
		Cells:     cells,
	}
}
