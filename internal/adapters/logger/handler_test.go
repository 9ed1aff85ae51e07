package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/adapters/logger"
	"go.trai.ch/assetpipe/internal/ui/output"
)

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewPrettyHandlerWithOutput(output.NewWithProfile(&buf, output.Ascii), nil)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("mode", "production")}))
	log.Info("building")
	log.WithGroup("stats").Warn("slow", "ms", 1200)
	log.Error("failed")

	require.Equal(t,
		"building mode=production\n"+
			"! slow mode=production stats.ms=1200\n"+
			"✗ failed mode=production\n",
		buf.String())
}
