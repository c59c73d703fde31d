package live

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiGreen  = "\x1b[42;30m"
	ansiDim    = "\x1b[2m"
	ansiClear  = "\x1b[H\x1b[2J"
	nameWidth  = 28
	classWidth = 22
)

// TextRenderer draws a View as a plain-text board. ANSI colours and screen
// clearing are only used when writing to a terminal.
type TextRenderer struct {
	w     io.Writer
	color bool
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TextRenderer{w: w, color: color}
}

func (r *TextRenderer) Render(v View) error {
	var b strings.Builder

	if r.color {
		b.WriteString(ansiClear)
	}
	b.WriteString(r.style(ansiBold, "LIVE ATTENDANCE"))
	fmt.Fprintf(&b, "  %d record(s)", len(v.Records))
	if v.Cursor != nil {
		fmt.Fprintf(&b, "  last scan %s", v.Cursor.Local().Format("Jan 2 15:04:05"))
	}
	b.WriteString("\n\n")

	if v.Flash != nil {
		line := fmt.Sprintf(" >> %s  %s %s  %s ", v.Flash.StudentName, v.Flash.GradeLevel, v.Flash.Section, v.Flash.Status)
		switch {
		case v.Emphasized:
			b.WriteString(r.style(ansiGreen, line))
		default:
			b.WriteString(r.style(ansiDim, line))
		}
		b.WriteString("\n\n")
	}

	for _, rec := range v.Records {
		fmt.Fprintf(&b, "%s  %s  %s  %-8s %s\n",
			rec.ScanTime.Local().Format("15:04:05"),
			runewidth.FillRight(runewidth.Truncate(rec.StudentName, nameWidth, "…"), nameWidth),
			runewidth.FillRight(runewidth.Truncate(rec.GradeLevel+" - "+rec.Section, classWidth, "…"), classWidth),
			rec.Status,
			rec.RFIDCard,
		)
	}
	if len(v.Records) == 0 {
		b.WriteString("Waiting for scans...\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *TextRenderer) style(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}
