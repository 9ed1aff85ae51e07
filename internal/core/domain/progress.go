package domain

import "time"

// ProgressEvent is a compilation progress notification.
type ProgressEvent struct {
	// Fraction is the completed share of the compilation, from 0 to 1.
	Fraction float64
	Message  string
	Activity string
	Active   string
	Module   string
}

// Done reports whether the event marks the end of a compilation.
func (e ProgressEvent) Done() bool {
	return e.Fraction >= 1
}

// BuildTrigger tells why a watch-mode build ran.
type BuildTrigger int

const (
	// TriggerInitial is the first build of a watch session.
	TriggerInitial BuildTrigger = iota
	// TriggerChange is a rebuild after file changes.
	TriggerChange
)

func (t BuildTrigger) String() string {
	if t == TriggerInitial {
		return "initial"
	}
	return "change"
}

// BuildEvent describes a completed watch-mode build.
type BuildEvent struct {
	Seq      int
	Trigger  BuildTrigger
	Changed  []string
	Summary  DiagnosticsSummary
	Duration time.Duration
}
