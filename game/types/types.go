package types

import (
	"fmt"
	"strings"
)

// Grid represents the game grid dimensions
type Grid struct {
	Rows int
	Cols int
}

// Start snake layout
const (
	StartLength = 3 // Segments of a freshly spawned snake
	// The head sits at Cols/2 with the body trailing left of it
	MinCols = 2 * (StartLength - 1)
)

// GridFromViewport derives the grid from a viewport and a cell size.
// Partial cells at the right and bottom edge are dropped.
func GridFromViewport(viewportW, viewportH, cellSize int) Grid {
	if cellSize <= 0 {
		return Grid{}
	}
	return Grid{
		Rows: viewportH / cellSize,
		Cols: viewportW / cellSize,
	}
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// Area returns the number of cells
func (g Grid) Area() int {
	return g.Rows * g.Cols
}

// Center returns the cell where a new snake's head is placed
func (g Grid) Center() Point {
	return Point{Row: g.Rows / 2, Col: g.Cols / 2}
}

// Playable reports whether a start snake fits and still leaves room for food
func (g Grid) Playable() bool {
	return g.Rows >= 1 && g.Cols >= MinCols && g.Area() > StartLength
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// Point is a cell coordinate, row first
type Point struct {
	Row, Col int
}

// Add returns p shifted by d
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Sub returns the offset from q to p
func (p Point) Sub(q Point) Point {
	return Point{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction represents a cardinal direction
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists the four real directions in clockwise order
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the one-cell offset for the direction
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{Row: -1, Col: 0}
	case Right:
		return Point{Row: 0, Col: 1}
	case Down:
		return Point{Row: 1, Col: 0}
	case Left:
		return Point{Row: 0, Col: -1}
	default:
		return Point{}
	}
}

// Move returns p shifted one cell toward d
func (d Direction) Move(p Point) Point {
	return p.Add(d.Delta())
}

// Opposite returns the 180° reverse; None stays None
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// TurnLeft returns the direction after a 90° counter-clockwise turn
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a 90° clockwise turn
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

// Valid reports whether d is one of the four real directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// DirectionOf returns the direction matching a one-cell offset, or None
func DirectionOf(delta Point) Direction {
	for _, d := range Directions {
		if d.Delta() == delta {
			return d
		}
	}
	return None
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection accepts the lowercase names produced by String
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return None, fmt.Errorf("unknown direction %q", s)
}
