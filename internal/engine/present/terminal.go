package present

import (
	"bufio"
	"io"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
)

// Terminal size used when the output is not a terminal.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// upperHalf draws the top pixel in the foreground color and the bottom pixel
// in the background color of one cell.
const upperHalf = "▀"

// Terminal renders framebuffers as truecolor half-block cells, two pixel
// rows per text row. The last row holds a status line.
type Terminal struct {
	w      *bufio.Writer
	fd     int
	cols   int
	rows   int
	status string
	opened bool
	closed bool
}

// NewTerminal writes to out. When fd refers to a terminal its size is read
// before every frame; otherwise cols×rows is used (defaults when zero).
func NewTerminal(out io.Writer, fd int, cols, rows int) *Terminal {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Terminal{
		w:    bufio.NewWriterSize(out, 64*1024),
		fd:   fd,
		cols: cols,
		rows: rows,
	}
}

// SetStatus sets the text shown below the image.
func (t *Terminal) SetStatus(s string) {
	t.status = s
}

// Size returns the terminal size in cells used for the next frame.
func (t *Terminal) Size() (cols, rows int) {
	if t.fd >= 0 && term.IsTerminal(t.fd) {
		if w, h, err := term.GetSize(t.fd); err == nil && w > 0 && h > 1 {
			return w, h
		}
	}
	return t.cols, t.rows
}

// Present draws fb scaled to fit the terminal, keeping its aspect ratio.
func (t *Terminal) Present(fb *framebuffer.Framebuffer) error {
	if t.closed {
		return ErrClosed
	}
	if !t.opened {
		t.w.WriteString(ansi.HideCursor)
		t.w.WriteString(ansi.EraseEntireScreen)
		t.opened = true
	}

	cols, rows := t.Size()
	imgW, imgH := fit(fb.Width(), fb.Height(), cols, (rows-1)*2)
	padX := (cols - imgW) / 2

	t.w.WriteString(ansi.CursorHomePosition)
	fg, bg := int64(-1), int64(-1)
	for cy := 0; cy < rows-1; cy++ {
		if cy*2 >= imgH {
			t.w.WriteString(ansi.ResetStyle)
			t.w.WriteString(ansi.EraseLineRight)
			t.w.WriteString("\r\n")
			fg, bg = -1, -1
			continue
		}
		t.w.WriteString(ansi.ResetStyle)
		fg, bg = -1, -1
		for i := 0; i < padX; i++ {
			t.w.WriteByte(' ')
		}
		for cx := 0; cx < imgW; cx++ {
			top := sample(fb, cx, cy*2, imgW, imgH)
			bottom := top
			if cy*2+1 < imgH {
				bottom = sample(fb, cx, cy*2+1, imgW, imgH)
			}
			if int64(top) != fg || int64(bottom) != bg {
				st := ansi.NewStyle()
				if int64(top) != fg {
					st = st.ForegroundColor(ansi.TrueColor(top))
					fg = int64(top)
				}
				if int64(bottom) != bg {
					st = st.BackgroundColor(ansi.TrueColor(bottom))
					bg = int64(bottom)
				}
				t.w.WriteString(st.String())
			}
			t.w.WriteString(upperHalf)
		}
		t.w.WriteString(ansi.ResetStyle)
		t.w.WriteString(ansi.EraseLineRight)
		t.w.WriteString("\r\n")
	}

	t.w.WriteString(ansi.ResetStyle)
	t.w.WriteString(ansi.Truncate(t.status, cols, ""))
	t.w.WriteString(ansi.EraseLineRight)
	return t.w.Flush()
}

// Close restores the cursor.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if !t.opened {
		return nil
	}
	t.w.WriteString(ansi.ResetStyle)
	t.w.WriteString(ansi.ShowCursor)
	t.w.WriteString("\r\n")
	return t.w.Flush()
}

// fit scales w×h down to fit inside maxW×maxH, keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if maxW < 1 || maxH < 1 {
		return 0, 0
	}
	if w*maxH > h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

// sample returns the framebuffer pixel under cell pixel (x, y) of a w×h
// image stretched over the whole framebuffer.
func sample(fb *framebuffer.Framebuffer, x, y, w, h int) uint32 {
	sx := (2*x + 1) * fb.Width() / (2 * w)
	sy := (2*y + 1) * fb.Height() / (2 * h)
	return uint32(fb.At(sx, sy))
}
