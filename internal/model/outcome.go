package model

// Outcome is the final state of one download task.
type Outcome int

const (
	// OutcomeFailed means every attempt failed or the run was cancelled.
	OutcomeFailed Outcome = iota

	// OutcomeSaved means the file was downloaded in full.
	OutcomeSaved

	// OutcomeSkipped means a file already existed at the task path and no
	// request was made.
	OutcomeSkipped

	// OutcomeForbidden means the server answered 403. It is never retried.
	OutcomeForbidden
)

// OK reports whether the file is present locally after the task.
func (o Outcome) OK() bool {
	return o == OutcomeSaved || o == OutcomeSkipped
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "failed"
	}
}
