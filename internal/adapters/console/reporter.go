// Package console prints build outcomes for humans.
package console

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/ui/output"
	"go.trai.ch/assetpipe/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Headlines of the three build outcomes.
const (
	FailedHeadline   = "Failed to compile."
	WarningsHeadline = "Compiled with warnings."
	SuccessHeadline  = "Compiled successfully."
	WarningsHint     = "Search for the keywords to learn more about each warning."
)

// Reporter writes build summaries and watch reports.
type Reporter struct {
	mu  sync.Mutex
	out *termenv.Output
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return NewWithOutput(output.New(w))
}

// NewWithOutput creates a Reporter writing to out.
func NewWithOutput(out *termenv.Output) *Reporter {
	return &Reporter{out: out}
}

// PrintSummary prints the outcome of a one-shot build.
func (r *Reporter) PrintSummary(summary domain.DiagnosticsSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeSummary(summary)
}

// PrintFailure prints a build that could not complete.
func (r *Reporter) PrintFailure(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(r.colored(style.Red, FailedHeadline) + "\n\n" + err.Error() + "\n")
}

// PrintReport prints the compact report of a watch-mode build, followed by a
// blank line separating it from the next one.
func (r *Reporter) PrintReport(summary domain.DiagnosticsSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := summary.Stats; s != nil {
		r.write(fmt.Sprintf("Hash: %s\nTime: %dms\nBuilt at: %s\n",
			s.Hash, s.Time, time.UnixMilli(s.BuiltAt).Format(time.DateTime)))
		r.writeAssets(s.Assets)
		r.write("\n")
	}
	r.writeSummary(summary)
	r.write("\n")
}

func (r *Reporter) writeSummary(summary domain.DiagnosticsSummary) {
	switch {
	case summary.Failed():
		r.write(r.colored(style.Red, FailedHeadline) + "\n\n" + strings.Join(summary.Errors, "\n\n") + "\n")
		if summary.Dropped > 0 {
			r.write(r.colored(style.Slate, fmt.Sprintf("\n(%d more %s not shown)", summary.Dropped, plural(summary.Dropped, "error"))) + "\n")
		}
	case summary.HasWarnings():
		r.write(r.colored(style.Yellow, WarningsHeadline) + "\n\n" + strings.Join(summary.Warnings, "\n\n") + "\n\n")
		r.write(r.colored(style.Slate, WarningsHint) + "\n")
	default:
		r.write(r.colored(style.Green, SuccessHeadline) + "\n")
	}
}

func (r *Reporter) writeAssets(assets []domain.AssetStats) {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Symbols: tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off, BetweenRows: tw.Off},
				Lines:      tw.Lines{ShowHeaderLine: tw.Off},
			},
		})),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	table.Header("Asset", "Size", "Chunks")

	sorted := slices.Clone(assets)
	slices.SortFunc(sorted, func(a, b domain.AssetStats) int { return strings.Compare(a.Name, b.Name) })
	for _, a := range sorted {
		_ = table.Append([]string{a.Name, humanize.Bytes(uint64(max(a.Size, 0))), strings.Join(a.Chunks, ", ")})
	}
	_ = table.Render()
}

func (r *Reporter) colored(color lipgloss.Color, text string) string {
	return r.out.String(text).Foreground(termenv.RGBColor(string(color))).String()
}

func (r *Reporter) write(s string) {
	_, _ = io.WriteString(r.out, s)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
