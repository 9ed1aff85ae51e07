// Package progress renders compilation progress on a single terminal line.
package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/ui/output"
)

var _ ports.ProgressReporter = (*Reporter)(nil)

// ModuleTail is the number of trailing characters of the current module path shown.
const ModuleTail = 30

// DoneLine is printed when a compilation completes.
const DoneLine = "assetpipe: done."

// Reporter writes progress events to a terminal.
type Reporter struct {
	mu          sync.Mutex
	out         *termenv.Output
	interactive bool
}

// New creates a Reporter writing to w. Status lines are only drawn when
// interactive is true; otherwise just the done line appears.
func New(w io.Writer, interactive bool) *Reporter {
	return &Reporter{
		out:         output.New(w),
		interactive: interactive,
	}
}

// Handle renders one progress event.
func (r *Reporter) Handle(event domain.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Done() {
		if r.interactive {
			_, _ = io.WriteString(r.out, "\n")
		}
		_, _ = io.WriteString(r.out, DoneLine+"\n")
		return
	}
	if !r.interactive {
		return
	}

	_, _ = io.WriteString(r.out, "\r"+Line(event))
	r.out.ClearLineRight()
}

// Line formats the status line of a running compilation.
func Line(event domain.ProgressEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d%% %s", int(math.Round(event.Fraction*100)), event.Message)
	for _, part := range []string{event.Activity, event.Active} {
		if part != "" {
			b.WriteString(" " + part)
		}
	}
	if event.Module != "" {
		b.WriteString(" " + tail(event.Module, ModuleTail))
	}
	return b.String()
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n:])
}
