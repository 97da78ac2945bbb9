package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int)
	AddDecoration(col, row uint16, content string, frames int)
	RenderLoop(delay, period time.Duration, render func(dt time.Duration) bool)
	Fill(row, column uint16, message string)
}
