// Package logger implements ports.Logger with log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/assetpipe/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// messager is implemented by zerr errors: the message of one link without its causes.
type messager interface {
	Message() string
}

// metadataCarrier is implemented by zerr errors carrying key/value context.
type metadataCarrier interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
}

// New creates a Logger writing to stderr.
func New() *Logger {
	l := &Logger{}
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput redirects the logger. A nil w means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	handler := NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its chain of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the zerr chain. The first error that is not a
// zerr error ends the walk with its full message. Links without a message
// only carry metadata, which moves to the next entry.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}
		meta := pending
		if mc, ok := current.(metadataCarrier); ok {
			meta = mergeMetadata(pending, mc.Metadata())
		}
		if m.Message() == "" {
			pending = meta
		} else {
			entries = append(entries, errorEntry{message: m.Message(), metadata: meta})
			pending = nil
		}
		current = errors.Unwrap(current)
	}
	return entries
}

func mergeMetadata(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	out := maps.Clone(a)
	maps.Copy(out, b)
	return out
}

func formatErrorEntries(entries []errorEntry) string {
	var lines []string
	for i, e := range entries {
		first, rest, _ := strings.Cut(e.message, "\n")
		if meta := formatMetadata(e.metadata); meta != "" {
			first += " " + meta
		}

		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+first)
		if rest != "" {
			for _, line := range strings.Split(rest, "\n") {
				lines = append(lines, indent+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return "(" + strings.Join(parts, " ") + ")"
}
