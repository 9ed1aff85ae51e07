// Package driver runs the bundler engine once or in a watch loop.
package driver

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/engine/diagnostics"
	"golang.org/x/sync/errgroup"
)

const (
	// SpanName is the name of the span recorded for every build.
	SpanName = "assetpipe.build"

	// DefaultDebounceWindow is how long the watch loop waits for changes to settle.
	DefaultDebounceWindow = 100 * time.Millisecond
)

// Driver runs builds of a transformed configuration.
type Driver struct {
	engine   ports.Engine
	store    ports.OutputStore
	watcher  ports.Watcher
	reporter ports.Reporter
	tracer   ports.Tracer
	window   time.Duration
}

// New creates a Driver.
func New(
	engine ports.Engine,
	store ports.OutputStore,
	watcher ports.Watcher,
	reporter ports.Reporter,
	tracer ports.Tracer,
) *Driver {
	return &Driver{
		engine:   engine,
		store:    store,
		watcher:  watcher,
		reporter: reporter,
		tracer:   tracer,
		window:   DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets the watch debounce window.
func (d *Driver) WithDebounceWindow(window time.Duration) *Driver {
	d.window = window
	return d
}

// BuildOptions configures a one-shot build.
type BuildOptions struct {
	// WriteStats persists the compilation stats after a successful build.
	WriteStats bool
}

// WatchOptions configures the watch loop.
type WatchOptions struct {
	// Root is the directory watched for changes.
	Root string
	// Ignore lists glob patterns, relative to Root, excluded from watching.
	Ignore []string
	// Progress receives engine progress events. Optional.
	Progress func(domain.ProgressEvent)
	// OnBuild is called after every completed build. Optional.
	OnBuild func(domain.BuildEvent)
}

// BuildOnce empties the output directory and compiles cfg once.
//
// An engine failure with a message is reported as the build's only error.
// A failure without one is returned as is. A stats write failure fails the
// build with domain.ErrStatsWriteFailed.
func (d *Driver) BuildOnce(ctx context.Context, cfg *domain.BuildConfiguration, opts BuildOptions) (domain.DiagnosticsSummary, error) {
	ctx, span := d.tracer.Start(ctx, SpanName)
	defer span.End()
	span.SetAttribute("mode", cfg.Mode.String())
	span.SetAttribute("trigger", "once")

	if err := d.store.Empty(cfg.Output.Path); err != nil {
		span.RecordError(err)
		return domain.DiagnosticsSummary{}, err
	}

	result, err := d.engine.Run(ctx, cfg)
	if err != nil {
		if err.Error() == "" {
			span.RecordError(err)
			return domain.DiagnosticsSummary{}, err
		}
		result = &domain.CompileResult{Errors: []domain.Diagnostic{{Text: err.Error()}}}
	}

	summary := summarize(span, result)
	if summary.Failed() || !opts.WriteStats || summary.Stats == nil {
		return summary, nil
	}

	path := filepath.Join(cfg.Output.Path, domain.StatsFileName)
	if err := d.store.WriteStats(ctx, path, summary.Stats); err != nil {
		err = errors.Join(domain.ErrStatsWriteFailed, err)
		span.RecordError(err)
		return summary, err
	}

	return summary, nil
}

// Watch empties the output directory, builds cfg and rebuilds it whenever a
// file under opts.Root changes, until ctx is done.
//
// At most one build runs at a time. Changes seen during a build are merged
// into a single follow-up build. Compile errors are reported and the loop goes
// on; an engine or watcher failure ends it with an error.
func (d *Driver) Watch(ctx context.Context, cfg *domain.BuildConfiguration, opts WatchOptions) error {
	if err := d.store.Empty(cfg.Output.Path); err != nil {
		return err
	}

	session, err := d.engine.Open(cfg, opts.Progress)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	g, gctx := errgroup.WithContext(ctx)

	if err := d.watcher.Start(gctx, opts.Root, opts.Ignore...); err != nil {
		return errors.Join(domain.ErrWatcherFailed, err)
	}
	defer func() { _ = d.watcher.Stop() }()

	queue := newChangeQueue()
	debouncer := NewDebouncer(d.window, queue.push)
	defer debouncer.Stop()

	g.Go(func() error {
		for ev := range d.watcher.Events() {
			debouncer.Add(ev.Path)
		}
		if err := d.watcher.Err(); err != nil {
			return errors.Join(domain.ErrWatcherFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		return d.loop(gctx, cfg, session, queue, opts)
	})

	return g.Wait()
}

func (d *Driver) loop(
	ctx context.Context,
	cfg *domain.BuildConfiguration,
	session ports.Session,
	queue *changeQueue,
	opts WatchOptions,
) error {
	seq := 0
	build := func(trigger domain.BuildTrigger, changed []string) error {
		seq++
		start := time.Now()

		spanCtx, span := d.tracer.Start(ctx, SpanName)
		defer span.End()
		span.SetAttribute("mode", cfg.Mode.String())
		span.SetAttribute("trigger", trigger.String())

		result, err := session.Rebuild(spanCtx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			span.RecordError(err)
			return err
		}

		summary := summarize(span, result)
		d.reporter.PrintReport(summary)

		if opts.OnBuild != nil {
			opts.OnBuild(domain.BuildEvent{
				Seq:      seq,
				Trigger:  trigger,
				Changed:  changed,
				Summary:  summary,
				Duration: time.Since(start),
			})
		}
		return nil
	}

	if err := build(domain.TriggerInitial, nil); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-queue.ready:
			changed := queue.take()
			if len(changed) == 0 {
				continue
			}
			if err := build(domain.TriggerChange, changed); err != nil {
				return err
			}
		}
	}
}

func summarize(span ports.Span, result *domain.CompileResult) domain.DiagnosticsSummary {
	if result == nil {
		result = &domain.CompileResult{}
	}
	span.SetAttribute("errors", len(result.Errors))
	span.SetAttribute("warnings", len(result.Warnings))
	return diagnostics.Summarize(result)
}
