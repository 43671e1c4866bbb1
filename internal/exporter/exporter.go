package exporter

import "context"

// State of an export operation as reported by the managed service.
type State string

const (
	StateInProgress State = "InProgress"
	StateSucceeded  State = "Succeeded"
	StateFailed     State = "Failed"
	StateCancelled  State = "Cancelled"
	StateUnknown    State = "Unknown"
)

// Terminal reports whether the operation has left the in-progress state.
func (s State) Terminal() bool { return s != StateInProgress }

// Status is one observation of an export operation.
type Status struct {
	State   State
	Message string // failure details, when the service provides them
}

// Request names the source database, target blob and credentials for one
// export submission. Constructed once per run; never logged as a whole.
type Request struct {
	ResourceGroup string
	Server        string
	Database      string

	AdminLogin    string
	AdminPassword string // secret

	StorageKey     string // secret
	StorageKeyType string
	StorageURI     string
}

// Client submits export requests to the managed database service.
type Client interface {
	SubmitExport(ctx context.Context, req Request) (Operation, error)
}

// Operation is a handle to an in-flight export. Each Status call performs one
// status query against the service.
type Operation interface {
	Status(ctx context.Context) (Status, error)
}
