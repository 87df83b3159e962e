//go:build windows

package console

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
)

type win32 struct{}

// Win32 returns the Screen for the process's standard output console.
func Win32() Screen {
	return win32{}
}

// Native returns the platform Screen.
func Native() Screen {
	return Win32()
}

func stdout() windows.Handle {
	h, _ := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	return h
}

func (win32) Info() Info {
	var s windows.ConsoleScreenBufferInfo
	_ = windows.GetConsoleScreenBufferInfo(stdout(), &s)
	return Info{
		Size:   Coord{X: int(s.Size.X), Y: int(s.Size.Y)},
		Cursor: Coord{X: int(s.CursorPosition.X), Y: int(s.CursorPosition.Y)},
	}
}

func (win32) Fill(ch rune, n int, at Coord) {
	var written uint32
	procFillConsoleOutputCharacter.Call(
		uintptr(stdout()),
		uintptr(uint16(ch)),
		uintptr(uint32(n)),
		uintptr(packCoord(at)),
		uintptr(unsafe.Pointer(&written)),
	)
}

func (win32) SetCursor(at Coord) {
	_ = windows.SetConsoleCursorPosition(stdout(), windows.Coord{X: int16(at.X), Y: int16(at.Y)})
}
