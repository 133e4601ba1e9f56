package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/shared"
)

// RunRepository implements models.Repository[*models.MigrationRun] for run tracking.
//
// Handles run CRUD operations with soft delete support and status-based queries.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new migration run into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.MigrationRun) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (
			id, sequence, roster_path, registry_path, users_total,
			users_migrated, users_failed, conversations_migrated, status,
			error_message, started_at, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage any = run.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.RosterPath(),
		run.RegistryPath(),
		run.UsersTotal(),
		run.UsersMigrated(),
		run.UsersFailed(),
		run.ConversationsMigrated(),
		run.Status(),
		errorMessage,
		run.StartedAt(),
		run.CompletedAt(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a migration run by ID, excluding soft-deleted runs
func (r *RunRepository) Get(id string) (*models.MigrationRun, error) {
	query := `
		SELECT
			id, sequence, roster_path, registry_path, users_total,
			users_migrated, users_failed, conversations_migrated, status,
			error_message, started_at, completed_at, created_at, updated_at,
			deleted_at
		FROM runs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing migration run in the database
func (r *RunRepository) Update(run *models.MigrationRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE runs
		SET users_total = ?, users_migrated = ?, users_failed = ?,
			conversations_migrated = ?, status = ?, error_message = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var errorMessage any = run.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	result, err := r.db.Exec(query,
		run.UsersTotal(),
		run.UsersMigrated(),
		run.UsersFailed(),
		run.ConversationsMigrated(),
		run.Status(),
		errorMessage,
		run.StartedAt(),
		run.CompletedAt(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found or already deleted: %s", run.ID())
	}

	return nil
}

// Delete soft-deletes a migration run by ID
func (r *RunRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE runs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all migration runs matching the given criteria, excluding soft-deleted runs
func (r *RunRepository) List(criteria map[string]any) ([]*models.MigrationRun, error) {
	query := `
		SELECT
			id, sequence, roster_path, registry_path, users_total,
			users_migrated, users_failed, conversations_migrated, status,
			error_message, started_at, completed_at, created_at, updated_at,
			deleted_at
		FROM runs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if rosterPath, ok := criteria["roster_path"].(string); ok && rosterPath != "" {
		query += " AND roster_path = ?"
		args = append(args, rosterPath)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.MigrationRun
	for rows.Next() {
		run, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// scanOne scans a single [sql.Row] into a [models.MigrationRun]
func (r *RunRepository) scanOne(row *sql.Row) (*models.MigrationRun, error) {
	var (
		id                    string
		sequence              int
		rosterPath            string
		registryPath          string
		usersTotal            int
		usersMigrated         int
		usersFailed           int
		conversationsMigrated int
		status                string
		errorMessage          sql.NullString
		startedAt             sql.NullTime
		completedAt           sql.NullTime
		createdAt             time.Time
		updatedAt             time.Time
		deletedAt             sql.NullTime
	)

	err := row.Scan(
		&id, &sequence, &rosterPath, &registryPath, &usersTotal,
		&usersMigrated, &usersFailed, &conversationsMigrated, &status,
		&errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	return r.restore(id, sequence, rosterPath, registryPath, usersTotal, usersMigrated,
		usersFailed, conversationsMigrated, status, errorMessage, startedAt, completedAt,
		updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.MigrationRun]
func (r *RunRepository) scanRow(rows *sql.Rows) (*models.MigrationRun, error) {
	var (
		id                    string
		sequence              int
		rosterPath            string
		registryPath          string
		usersTotal            int
		usersMigrated         int
		usersFailed           int
		conversationsMigrated int
		status                string
		errorMessage          sql.NullString
		startedAt             sql.NullTime
		completedAt           sql.NullTime
		createdAt             time.Time
		updatedAt             time.Time
		deletedAt             sql.NullTime
	)

	err := rows.Scan(
		&id, &sequence, &rosterPath, &registryPath, &usersTotal,
		&usersMigrated, &usersFailed, &conversationsMigrated, &status,
		&errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	return r.restore(id, sequence, rosterPath, registryPath, usersTotal, usersMigrated,
		usersFailed, conversationsMigrated, status, errorMessage, startedAt, completedAt,
		updatedAt, deletedAt), nil
}

func (r *RunRepository) restore(id string, sequence int, rosterPath, registryPath string,
	usersTotal, usersMigrated, usersFailed, conversationsMigrated int, status string,
	errorMessage sql.NullString, startedAt, completedAt sql.NullTime,
	updatedAt time.Time, deletedAt sql.NullTime,
) *models.MigrationRun {
	run := models.NewMigrationRun(sequence, rosterPath, registryPath)
	run.SetID(id)
	run.SetUsersTotal(usersTotal)
	run.SetUsersMigrated(usersMigrated)
	run.SetUsersFailed(usersFailed)
	run.SetConversationsMigrated(conversationsMigrated)
	run.SetStatus(status)
	run.SetUpdatedAt(updatedAt)

	if errorMessage.Valid {
		run.SetErrorMessage(errorMessage.String)
	}
	if startedAt.Valid {
		run.SetStartedAt(&startedAt.Time)
	}
	if completedAt.Valid {
		run.SetCompletedAt(&completedAt.Time)
	}
	if deletedAt.Valid {
		run.SetDeletedAt(&deletedAt.Time)
	}

	return run
}
