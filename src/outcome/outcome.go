// Package outcome holds the three-way result every idempotent step reports.
package outcome

// Outcome is the result of a step that checks its own precondition first.
type Outcome int

const (
	// Failed means the step was attempted and did not complete.
	Failed Outcome = iota
	// Applied means the step changed something.
	Applied
	// Satisfied means the desired state already held and nothing was done.
	Satisfied
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Satisfied:
		return "satisfied"
	default:
		return "failed"
	}
}

// Merge folds the outcome of a sub-step into an aggregate: any Applied wins,
// then Failed, then Satisfied.
func Merge(total, next Outcome) Outcome {
	if total == Applied || next == Applied {
		return Applied
	}
	if total == Failed || next == Failed {
		return Failed
	}
	return Satisfied
}
