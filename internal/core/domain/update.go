package domain

import "time"

// UpdateRun is the ephemeral result of one website-update invocation. It is
// not persisted beyond the audit record written alongside it.
type UpdateRun struct {
	Success      bool      `json:"success"`
	Output       string    `json:"output"`
	Branch       string    `json:"branch"`
	CommitBefore string    `json:"commit_before"`
	CommitAfter  string    `json:"commit_after"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RepoStatus is a read-only snapshot of the managed website checkout.
type RepoStatus struct {
	Branch       string    `json:"branch"`
	Commit       string    `json:"commit"`
	LastSyncTime time.Time `json:"last_sync_time"`
	IsClean      bool      `json:"is_clean"`
}
