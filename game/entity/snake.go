package entity

import (
	"snake-arcade/game/types"
)

// Snake is an ordered body, head first. Each segment is adjacent to the next
// and no two segments share a cell while the round is running.
type Snake struct {
	body []types.Point
}

// NewSnake spawns the fixed start snake: head at the grid center, body
// trailing to the left so it faces right.
func NewSnake(grid types.Grid) *Snake {
	head := grid.Center()
	body := make([]types.Point, 0, types.StartLength)
	for i := 0; i < types.StartLength; i++ {
		body = append(body, types.Point{Row: head.Row, Col: head.Col - i})
	}
	return &Snake{body: body}
}

// NewSnakeFromBody builds a snake from an explicit head-first body
func NewSnakeFromBody(body []types.Point) *Snake {
	b := make([]types.Point, len(body))
	copy(b, body)
	return &Snake{body: b}
}

func (s *Snake) GetHead() types.Point {
	return s.body[0]
}

// Heading derives the direction of travel from head and neck
func (s *Snake) Heading() types.Direction {
	if len(s.body) < 2 {
		return types.None
	}
	return types.DirectionOf(s.body[0].Sub(s.body[1]))
}

// Move prepends a new head
func (s *Snake) Move(newHead types.Point) {
	s.body = append(s.body, types.Point{})
	copy(s.body[1:], s.body)
	s.body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.body) > 0 {
		s.body = s.body[:len(s.body)-1]
	}
}

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}

// HitsBody reports whether the head coincides with any other segment
func (s *Snake) HitsBody() bool {
	head := s.GetHead()
	for _, part := range s.body[1:] {
		if part == head {
			return true
		}
	}
	return false
}

func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first
func (s *Snake) Body() []types.Point {
	b := make([]types.Point, len(s.body))
	copy(b, s.body)
	return b
}
