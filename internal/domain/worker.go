package domain

import "time"

// WorkerState describes the lifecycle state of one pool slot.
type WorkerState string

const (
	WorkerStateStarting WorkerState = "STARTING"
	WorkerStateRunning  WorkerState = "RUNNING"
	WorkerStateCrashed  WorkerState = "CRASHED"
	WorkerStateStopped  WorkerState = "STOPPED"
)

// WorkerInfo is the pool's view of one worker slot. The slot id doubles as
// the logical core the worker process is pinned to.
type WorkerInfo struct {
	ID           int         `json:"id"`
	CoreAffinity int         `json:"coreAffinity"`
	State        WorkerState `json:"state"`
	PID          int         `json:"pid,omitempty"`
	StartedAt    time.Time   `json:"startedAt"`
	Restarts     int         `json:"restarts"`
}
