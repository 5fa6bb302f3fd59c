package bbcode

import (
	"fmt"
)

// Warning describes a malformed construct found while parsing. It never changes the output,
// it only explains it.
type Warning struct {
	// Issue defines the type of the problem.
	Issue Issue `json:"issue"`

	// Pos is the byte position in the input at which the problem occurred.
	Pos int `json:"pos"`

	// Tag is the identifier of the Tag involved.
	Tag string `json:"tag,omitempty"`

	// Description is a human-readable story of what went wrong.
	Description string `json:"description"`
}

// WarningOverflowPolicy determines what happens when the maximum Warnings capacity is reached.
type WarningOverflowPolicy int

const (
	// WarnOverflowNoCap means no limit for Warning recording.
	WarnOverflowNoCap WarningOverflowPolicy = iota

	// WarnOverflowNoRec means adding new Warning is a no-op.
	WarnOverflowNoRec

	// WarnOverflowDrop means all Warnings after the overflow are discarded.
	WarnOverflowDrop

	// WarnOverflowTrunc means all Warnings after the overflow are discarded, but their number
	// is recorded and an additional Warning, signalling the overflow, is added.
	WarnOverflowTrunc
)

// Warnings maintains the list of issues found during parsing.
// The list can have a maximum capacity, after which further Warnings are discarded.
// A nil *Warnings is valid and records nothing.
type Warnings struct {
	policy WarningOverflowPolicy

	list []Warning

	// maxWarnings bounds the list, so adversarial input can't make it grow without limit.
	maxWarnings int

	overflowed bool

	// droppedCount is the number of the discarded Warnings after the overflow.
	droppedCount int

	// firstDropPos is the input position from which the Warnings are discarded.
	firstDropPos int
}

func (w *Warnings) IsOverflow() bool {
	return w != nil && w.overflowed
}

// DroppedCount is a number of Warnings discarded after the overflow.
func (w *Warnings) DroppedCount() int {
	if w == nil {
		return 0
	}
	return w.droppedCount
}

// FirstDropPos is the input position from which the Warnings are discarded.
func (w *Warnings) FirstDropPos() int {
	if w == nil {
		return 0
	}
	return w.firstDropPos
}

func (w *Warnings) List() []Warning {
	if w == nil {
		return nil
	}
	return w.list
}

// Add appends new [Warning] to the inner list according to the overflow policy.
func (w *Warnings) Add(item Warning) {
	if w == nil {
		return
	}

	switch w.policy {
	case WarnOverflowNoRec:
		return
	case WarnOverflowNoCap:
		w.list = append(w.list, item)
		return
	}

	// After overflow: Drop = ignore, Trunc = count + ignore
	if w.overflowed {
		if w.policy == WarnOverflowTrunc {
			w.droppedCount++
		}
		return
	}

	limit := w.maxWarnings
	if w.policy == WarnOverflowTrunc {
		limit = max(w.maxWarnings-1, 0) // reserve slot for truncation marker
	}

	if len(w.list) < limit {
		w.list = append(w.list, item)
		return
	}

	w.overflowed = true
	w.firstDropPos = item.Pos

	if w.policy == WarnOverflowTrunc {
		w.droppedCount = 1
		if w.maxWarnings > 0 {
			w.list = append(w.list, Warning{
				Issue:       IssueWarningsTruncated,
				Pos:         w.firstDropPos,
				Description: "too many warnings; further warnings suppressed",
			})
		}
	}
}

// NewWarnings creates a Warnings collector with the given overflow policy and capacity.
// It returns a *CompileError if cap is negative.
func NewWarnings(policy WarningOverflowPolicy, cap int) (*Warnings, error) {
	if cap < 0 {
		return nil, NewCompileError(
			IssueNegativeWarningsCap,
			"",
			fmt.Errorf("warnings cap must be non-negative, got %d", cap),
		)
	}

	return &Warnings{
		policy:      policy,
		list:        make([]Warning, 0, min(cap, 64)),
		maxWarnings: cap,
	}, nil
}
