package services

// Status is the observable state of a workflow's single in-flight
// operation: Idle -> Requesting -> Succeeded | Failed. Workflows own
// their status; there are no shared global flags.
type Status int

const (
	StatusIdle Status = iota
	StatusRequesting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequesting:
		return "requesting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}
