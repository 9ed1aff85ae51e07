package progress_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/assetpipe/internal/adapters/progress"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		event domain.ProgressEvent
		want  string
	}{
		{
			name:  "message only",
			event: domain.ProgressEvent{Fraction: 0.1, Message: "building"},
			want:  "10% building",
		},
		{
			name:  "rounds to the nearest percent",
			event: domain.ProgressEvent{Fraction: 0.29, Message: "building"},
			want:  "29% building",
		},
		{
			name:  "almost done shows full",
			event: domain.ProgressEvent{Fraction: 0.995, Message: "emitting"},
			want:  "100% emitting",
		},
		{
			name: "all parts",
			event: domain.ProgressEvent{
				Fraction: 0.42,
				Message:  "building",
				Activity: "loading",
				Active:   "3 active",
				Module:   "src/components/App.js",
			},
			want: "42% building loading 3 active src/components/App.js",
		},
		{
			name: "long module path keeps the tail",
			event: domain.ProgressEvent{
				Fraction: 0.5,
				Message:  "building",
				Module:   "node_modules/react-dom/cjs/react-dom.development.js",
			},
			want: "50% building …m/cjs/react-dom.development.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.Line(tt.event))
		})
	}
}

func TestReporter_Interactive(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	r := progress.New(&buf, true)

	r.Handle(domain.ProgressEvent{Fraction: 0.25, Message: "building"})
	r.Handle(domain.ProgressEvent{Fraction: 1, Message: "done"})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\r25% building"))
	assert.True(t, strings.HasSuffix(out, "\n"+progress.DoneLine+"\n"))
}

func TestReporter_NonInteractive(t *testing.T) {
	var buf bytes.Buffer
	r := progress.New(&buf, false)

	r.Handle(domain.ProgressEvent{Fraction: 0.25, Message: "building"})
	r.Handle(domain.ProgressEvent{Fraction: 0.75, Message: "sealing"})
	r.Handle(domain.ProgressEvent{Fraction: 1})

	assert.Equal(t, progress.DoneLine+"\n", buf.String())
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, progress.IsInteractive(&bytes.Buffer{}))

	t.Setenv("CI", "true")
	assert.False(t, progress.IsInteractive(&bytes.Buffer{}))
}
