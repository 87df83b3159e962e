package console

// packCoord lays out a COORD passed by value: X in the low word.
func packCoord(c Coord) uint32 {
	return uint32(uint16(int16(c.X))) | uint32(uint16(int16(c.Y)))<<16
}
