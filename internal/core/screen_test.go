package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 24, s.Height())

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			require.Equal(t, blankCell, s.GetCell(x, y), "new screen should be blank at (%d, %d)", x, y)
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	assert.Equal(t, 'X', s.Get(5, 5))

	s.SetColored(1, 1, 'M', ColorBrightYellow)
	assert.Equal(t, Cell{Rune: 'M', Color: ColorBrightYellow}, s.GetCell(1, 1))

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColored(0, -1, 'A', ColorYellow)
	s.SetColored(0, 100, 'A', ColorYellow)

	assert.Equal(t, ' ', s.Get(-1, 0))
	assert.Equal(t, blankCell, s.GetCell(100, 0))
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorYellow)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.Equal(t, blankCell, s.GetCell(x, y), "after Clear at (%d, %d)", x, y)
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorBrightCyan)

	for i, ch := range "Hello" {
		assert.Equal(t, Cell{Rune: ch, Color: ColorBrightCyan}, s.GetCell(2+i, 1))
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello")
	assert.Equal(t, 'H', s.Get(18, 0))
	assert.Equal(t, 'e', s.Get(19, 0))
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "•ab")

	assert.Equal(t, "•ab       ", s.Row(0), "multibyte runes occupy one cell each")
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			assert.Equal(t, '#', s.Get(x, y), "(%d, %d)", x, y)
		}
	}
	assert.Equal(t, ' ', s.Get(1, 1))
	assert.Equal(t, ' ', s.Get(5, 5))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorWhite)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		assert.Equal(t, Cell{Rune: c.r, Color: ColorWhite}, s.GetCell(c.x, c.y))
	}

	for x := 2; x < 5; x++ {
		assert.Equal(t, '─', s.Get(x, 1))
		assert.Equal(t, '─', s.Get(x, 4))
	}
	for y := 2; y < 4; y++ {
		assert.Equal(t, '│', s.Get(1, y))
		assert.Equal(t, '│', s.Get(5, y))
	}
}

func TestScreenDrawEllipse(t *testing.T) {
	s := NewScreen(20, 10)
	s.DrawEllipse(10, 5, 4, 2, 'o', ColorGray)

	assert.Equal(t, Cell{Rune: 'o', Color: ColorGray}, s.GetCell(9, 4), "center cell should be filled")
	assert.Equal(t, ' ', s.Get(0, 0))
	assert.Equal(t, ' ', s.Get(19, 9))

	// Degenerate radii draw nothing.
	s.Clear()
	s.DrawEllipse(10, 5, 0, 2, 'o', ColorGray)
	assert.NotContains(t, s.String(), "o")
}

func TestScreenDrawEllipseOutline(t *testing.T) {
	s := NewScreen(30, 15)
	s.DrawEllipseOutline(15, 7, 5, 3, '*', ColorBrightCyan)

	assert.Equal(t, ' ', s.Get(14, 6), "outline leaves the center empty")
	assert.Contains(t, s.String(), "*")
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawTextColored(0, 2, "CCCCC", ColorYellow)

	assert.Equal(t, "AAAAA\nBBBBB\nCCCCC", s.String())
	assert.Empty(t, NewScreen(0, 0).String())
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 4, s.Height())
	assert.True(t, strings.HasPrefix(s.Row(0), "Hello"), "content should be preserved, row 0 = %q", s.Row(0))

	s.Resize(15, 8)
	assert.True(t, strings.HasPrefix(s.Row(0), "Hello"), "content should be preserved after enlarging")

	s.Resize(-3, -3)
	assert.Zero(t, s.Width())
	assert.Zero(t, s.Height())
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	assert.Equal(t, "Test      ", s.Row(2))
	assert.Equal(t, "          ", s.Row(-1), "out of bounds row is spaces")
}
