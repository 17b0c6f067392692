package connect4

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

const (
	Cols    = 7
	Rows    = 6
	Connect = 4
)

var (
	ErrColumnRange = errors.New("column out of range")
	ErrColumnFull  = errors.New("column is full")
)

// Board holds discs by row (0 = top) and column. Zero means empty.
type Board [Rows][Cols]core.PlayerID

// Drop lets a disc fall into col and returns the row it lands on.
func (b *Board) Drop(col int, p core.PlayerID) (int, error) {
	if col < 0 || col >= Cols {
		return -1, ErrColumnRange
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == 0 {
			b[row][col] = p
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// CanDrop reports whether col has room for another disc.
func (b *Board) CanDrop(col int) bool {
	return col >= 0 && col < Cols && b[0][col] == 0
}

// Full reports whether every column is filled.
func (b *Board) Full() bool {
	for c := 0; c < Cols; c++ {
		if b.CanDrop(c) {
			return false
		}
	}
	return true
}

// Empty counts the free cells.
func (b *Board) Empty() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// WinsAt reports whether the disc at (row, col) is part of a line of four.
func (b *Board) WinsAt(row, col int) bool {
	p := b[row][col]
	if p == 0 {
		return false
	}
	for _, d := range directions {
		n := 1 + b.run(row, col, d[0], d[1], p) + b.run(row, col, -d[0], -d[1], p)
		if n >= Connect {
			return true
		}
	}
	return false
}

func (b *Board) run(row, col, dr, dc int, p core.PlayerID) int {
	n := 0
	for r, c := row+dr, col+dc; r >= 0 && r < Rows && c >= 0 && c < Cols && b[r][c] == p; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// Winner scans the whole board for a line of four.
func (b *Board) Winner() core.PlayerID {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.WinsAt(r, c) {
				return b[r][c]
			}
		}
	}
	return 0
}

// winningColumn returns a column where p would complete four, or -1.
func (b *Board) winningColumn(p core.PlayerID) int {
	for c := 0; c < Cols; c++ {
		trial := *b
		row, err := trial.Drop(c, p)
		if err != nil {
			continue
		}
		if trial.WinsAt(row, c) {
			return c
		}
	}
	return -1
}

// ChooseMove picks the CPU move for p: win if possible, block the opponent
// if needed, otherwise a random column weighted towards the centre.
func (b *Board) ChooseMove(p core.PlayerID, rng *rand.Rand) int {
	if c := b.winningColumn(p); c >= 0 {
		return c
	}
	if c := b.winningColumn(opponent(p)); c >= 0 {
		return c
	}

	total := 0
	var weights [Cols]int
	for c := 0; c < Cols; c++ {
		if b.CanDrop(c) {
			weights[c] = Connect - abs(c-Cols/2)
			total += weights[c]
		}
	}
	if total == 0 {
		return -1
	}
	pick := rng.Intn(total)
	for c, w := range weights {
		if pick < w {
			return c
		}
		pick -= w
	}
	return -1
}

func opponent(p core.PlayerID) core.PlayerID {
	if p == core.Player1 {
		return core.Player2
	}
	return core.Player1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
