package console_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/assetpipe/internal/adapters/console"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/ui/output"
)

func newTestReporter(t *testing.T) (*console.Reporter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return console.NewWithOutput(output.NewWithProfile(&buf, output.Ascii)), &buf
}

func TestReporter_PrintSummary(t *testing.T) {
	tests := []struct {
		name       string
		summary    domain.DiagnosticsSummary
		goldenName string
	}{
		{
			name:       "success",
			summary:    domain.DiagnosticsSummary{},
			goldenName: "summary_success",
		},
		{
			name: "warnings",
			summary: domain.DiagnosticsSummary{
				Warnings: []string{
					"src/App.js:3:7: \"logo\" is assigned a value but never used",
					"src/index.js:1:0: Comparison using the \"===\" operator here is always false",
				},
			},
			goldenName: "summary_warnings",
		},
		{
			name: "failed",
			summary: domain.DiagnosticsSummary{
				Errors:   []string{"src/App.js:4:2: Expected \";\" but found \"return\""},
				Warnings: []string{"ignored"},
			},
			goldenName: "summary_failed",
		},
		{
			name: "failed with dropped errors",
			summary: domain.DiagnosticsSummary{
				Errors:  []string{"src/App.js:4:2: Could not resolve \"./missing\""},
				Dropped: 2,
			},
			goldenName: "summary_failed_dropped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestReporter(t)
			r.PrintSummary(tt.summary)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestReporter_PrintFailure(t *testing.T) {
	r, buf := newTestReporter(t)

	r.PrintFailure(errors.New("stats write failed"))
	r.PrintFailure(nil)

	g := goldie.New(t)
	g.Assert(t, "failure", buf.Bytes())
}

func TestReporter_PrintReport(t *testing.T) {
	r, buf := newTestReporter(t)

	r.PrintReport(domain.DiagnosticsSummary{
		Stats: &domain.Stats{
			Hash:    "3f2a9c01b7d4e5f6",
			Time:    412,
			BuiltAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local).UnixMilli(),
			Assets: []domain.AssetStats{
				{Name: "js/main.chunk.js", Size: 2048, Chunks: []string{"main"}},
				{Name: "js/bundle.js", Size: 1234567, Chunks: []string{"runtime"}},
			},
			Chunks: []domain.ChunkStats{{Name: "main", Modules: []string{"src/index.js"}}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Hash: 3f2a9c01b7d4e5f6\n")
	assert.Contains(t, out, "Time: 412ms\n")
	assert.Contains(t, out, "Built at: 2026-03-01 12:00:00\n")
	assert.Contains(t, out, "js/bundle.js")
	assert.Contains(t, out, "1.2 MB")
	assert.Contains(t, out, "2.0 kB")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("js/bundle.js")), bytes.Index(buf.Bytes(), []byte("js/main.chunk.js")))
	assert.NotContains(t, out, "src/index.js")
	assert.Contains(t, out, console.SuccessHeadline+"\n\n")
}

func TestReporter_PrintReport_NoStats(t *testing.T) {
	r, buf := newTestReporter(t)

	r.PrintReport(domain.DiagnosticsSummary{Errors: []string{"boom"}})

	assert.Equal(t, console.FailedHeadline+"\n\nboom\n\n", buf.String())
}
