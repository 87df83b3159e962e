// Package console moves and clears the terminal cursor line.
//
// Every helper reads the screen state fresh through a Screen, so nothing is
// cached between calls.
package console

// Coord is a cell position or a buffer size in cells.
type Coord struct {
	X, Y int
}

// Info is a snapshot of the screen buffer geometry and cursor position.
type Info struct {
	Size   Coord
	Cursor Coord
}

// Screen is the console capability set the helpers need.
type Screen interface {
	// Info reports the current state. An unusable console yields a zero Info.
	Info() Info
	// Fill writes ch into n cells starting at at without moving the cursor.
	Fill(ch rune, n int, at Coord)
	SetCursor(at Coord)
}

// ClearLine blanks the whole cursor row and puts the cursor at its start.
func ClearLine(s Screen) {
	info := s.Info()
	start := Coord{X: 0, Y: info.Cursor.Y}
	s.Fill(' ', info.Size.X, start)
	s.SetCursor(start)
}

// MoveUp puts the cursor at column zero two rows above the current one.
// The row is not checked against the top of the buffer.
func MoveUp(s Screen) {
	info := s.Info()
	s.SetCursor(Coord{X: 0, Y: info.Cursor.Y - 2})
}

// Return puts the cursor at column zero of the current row.
func Return(s Screen) {
	info := s.Info()
	s.SetCursor(Coord{X: 0, Y: info.Cursor.Y})
}

// Width returns the buffer width in cells, or 0 if unknown.
func Width(s Screen) int {
	return s.Info().Size.X
}
