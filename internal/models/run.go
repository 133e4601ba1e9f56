package models

import (
	"fmt"
	"time"
)

// Run statuses track a migration run through its lifecycle.
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// MigrationRun tracks one execution of the contact migration pipeline:
// which roster it read, which registry it wrote, and per-user counters.
//
// Implements the Model interface with encapsulated fields.
type MigrationRun struct {
	id                    string
	sequence              int
	rosterPath            string
	registryPath          string
	usersTotal            int
	usersMigrated         int
	usersFailed           int
	conversationsMigrated int
	status                string
	errorMessage          string
	startedAt             *time.Time
	completedAt           *time.Time
	createdAt             time.Time
	updatedAt             time.Time
	deletedAt             *time.Time
}

// NewMigrationRun creates a pending run for the given roster and registry paths.
// The ID is assigned by the repository on Create.
func NewMigrationRun(sequence int, rosterPath, registryPath string) *MigrationRun {
	now := time.Now()
	return &MigrationRun{
		sequence:     sequence,
		rosterPath:   rosterPath,
		registryPath: registryPath,
		status:       RunStatusPending,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (r *MigrationRun) ID() string { return r.id }

func (r *MigrationRun) Sequence() int { return r.sequence }

func (r *MigrationRun) RosterPath() string { return r.rosterPath }

func (r *MigrationRun) RegistryPath() string { return r.registryPath }

func (r *MigrationRun) UsersTotal() int { return r.usersTotal }

func (r *MigrationRun) UsersMigrated() int { return r.usersMigrated }

func (r *MigrationRun) UsersFailed() int { return r.usersFailed }

func (r *MigrationRun) ConversationsMigrated() int { return r.conversationsMigrated }

func (r *MigrationRun) Status() string { return r.status }

func (r *MigrationRun) ErrorMessage() string { return r.errorMessage }

func (r *MigrationRun) StartedAt() *time.Time { return r.startedAt }

func (r *MigrationRun) CompletedAt() *time.Time { return r.completedAt }

func (r *MigrationRun) CreatedAt() time.Time { return r.createdAt }

func (r *MigrationRun) UpdatedAt() time.Time { return r.updatedAt }

func (r *MigrationRun) DeletedAt() *time.Time { return r.deletedAt }

func (r *MigrationRun) SetID(id string) { r.id = id }

func (r *MigrationRun) SetUsersTotal(n int) { r.usersTotal = n }

func (r *MigrationRun) SetUsersMigrated(n int) { r.usersMigrated = n }

func (r *MigrationRun) SetUsersFailed(n int) { r.usersFailed = n }

func (r *MigrationRun) SetConversationsMigrated(n int) { r.conversationsMigrated = n }

func (r *MigrationRun) SetStatus(status string) { r.status = status }

func (r *MigrationRun) SetErrorMessage(message string) { r.errorMessage = message }

func (r *MigrationRun) SetStartedAt(t *time.Time) { r.startedAt = t }

func (r *MigrationRun) SetCompletedAt(t *time.Time) { r.completedAt = t }

func (r *MigrationRun) SetUpdatedAt(t time.Time) { r.updatedAt = t }

func (r *MigrationRun) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// Start marks the run as running and records the start time.
func (r *MigrationRun) Start() {
	now := time.Now()
	r.status = RunStatusRunning
	r.startedAt = &now
	r.updatedAt = now
}

// Complete marks the run as completed and records the completion time.
func (r *MigrationRun) Complete() {
	now := time.Now()
	r.status = RunStatusCompleted
	r.completedAt = &now
	r.updatedAt = now
}

// Fail marks the run as failed with the given error message.
func (r *MigrationRun) Fail(message string) {
	now := time.Now()
	r.status = RunStatusFailed
	r.errorMessage = message
	r.completedAt = &now
	r.updatedAt = now
}

// Validate checks that the run has the fields persistence requires.
func (r *MigrationRun) Validate() error {
	if r.rosterPath == "" {
		return fmt.Errorf("migration run roster path is required")
	}
	if r.registryPath == "" {
		return fmt.Errorf("migration run registry path is required")
	}
	switch r.status {
	case RunStatusPending, RunStatusRunning, RunStatusCompleted, RunStatusFailed:
	default:
		return fmt.Errorf("invalid migration run status: %s", r.status)
	}
	return nil
}
