package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Progress renders a single carriage-return progress line on a TTY and
// stays silent everywhere else.
type Progress struct {
	out     io.Writer
	enabled bool
	width   int
}

// NewProgress creates a progress line bound to stderr.
func NewProgress() *Progress {
	fd := os.Stderr.Fd()
	p := &Progress{out: os.Stderr, enabled: isatty.IsTerminal(fd)}
	if p.enabled {
		if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
			p.width = w
		}
	}
	return p
}

// Update redraws the progress line.
func (p *Progress) Update(done, total int) {
	if !p.enabled {
		return
	}
	line := fmt.Sprintf("Downloading frames %d/%d", done, total)
	if p.width > 0 && len(line) > p.width-1 {
		line = line[:p.width-1]
	}
	fmt.Fprintf(p.out, "\r%s", line)
}

// Done clears the line and prints the summary.
func (p *Progress) Done(newFrames int, bytes int64) {
	if p.enabled {
		fmt.Fprint(p.out, "\r\033[K")
	}
	if newFrames > 0 {
		fmt.Fprintf(p.out, "Downloaded %d new frame(s), %s\n", newFrames, humanize.Bytes(uint64(bytes)))
	}
}
