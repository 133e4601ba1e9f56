package main

import (
	"context"
	"fmt"

	"github.com/harish2111/freshchat-migrations/internal/migrate"
	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/registry"
	"github.com/harish2111/freshchat-migrations/internal/repositories"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/urfave/cli/v3"
)

// MigrateRun migrates every contact in the roster to the destination tenant.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	rosterPath := r.rosterPath(cmd)
	registryPath := r.registryPath(cmd)

	roster, err := registry.ReadRoster(rosterPath)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		r.writePlainln("Roster is empty, nothing to migrate.")
		return nil
	}

	return r.runMigration(ctx, roster, rosterPath, registryPath)
}

// MigrateUser migrates a single contact identified by its source alias.
func (r *Runner) MigrateUser(ctx context.Context, cmd *cli.Command) error {
	alias := cmd.String("alias")
	rosterPath := r.rosterPath(cmd)
	registryPath := r.registryPath(cmd)

	roster, err := registry.ReadRoster(rosterPath)
	if err != nil {
		return err
	}

	for _, user := range roster {
		if user.Alias == alias {
			return r.runMigration(ctx, []models.SourceUser{user}, rosterPath, registryPath)
		}
	}
	return fmt.Errorf("%w: alias '%s' not in roster %s", shared.ErrUserNotFound, alias, rosterPath)
}

// runMigration drives the engine over the roster, prints progress, and
// persists the registry and the run ledger afterwards.
func (r *Runner) runMigration(ctx context.Context, roster []models.SourceUser, rosterPath, registryPath string) error {
	if r.engine == nil {
		return fmt.Errorf("%w: both tenants must be configured", shared.ErrServiceUnavailable)
	}

	r.logger.Info("starting migration", "roster", rosterPath, "contacts", len(roster))
	r.writePlain("Migrating %d contacts...\n", len(roster))
	r.writePlain("Roster: %s\n", rosterPath)
	r.writePlain("Registry: %s\n\n", registryPath)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan migrate.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case migrate.ResolveUser:
				r.writePlain("\n👤 %s\n", update.Message)
			case migrate.CreateContact:
				r.writePlain("   ➕ %s\n", update.Message)
			case migrate.FetchConversations:
				r.writePlain("   💬 %s\n", update.Message)
			case migrate.MigrateConversation, migrate.ConversationDone:
				r.writePlain("      %s\n", update.Message)
			case migrate.UserDone:
				r.writePlain("   %s\n", update.Message)
			case migrate.WriteRegistry:
				r.writePlain("\n💾 %s\n", update.Message)
			}
		}
	}()

	// Run the engine operation
	result, err := r.engine.Run(ctx, roster, progressCh)
	if err != nil {
		close(progressCh)
		r.recordRun(roster, rosterPath, registryPath, result, err)
		return err
	}

	total, persistErr := r.persistRegistry(registryPath, result.Rows)
	if persistErr == nil && len(result.Rows) > 0 {
		progressCh <- migrate.WriteRegistryUpdate(total)
	}
	close(progressCh)

	// Output summary
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Contacts migrated: %d/%d\n", result.UsersMigrated, result.UsersTotal)
	r.writePlain("Conversations copied: %d\n", result.ConversationsMigrated)

	if result.UsersFailed > 0 {
		r.writePlain("\nFailed to migrate %d contacts:\n", result.UsersFailed)
		for _, failure := range result.Failures {
			r.writePlain("  - %s: %v\n", failure.Alias, failure.Err)
		}
	}

	if persistErr != nil {
		r.writePlain("\n⚠ Failed to write registry: %v\n", persistErr)
		r.recordRun(roster, rosterPath, registryPath, result, persistErr)
		return persistErr
	}

	r.recordRun(roster, rosterPath, registryPath, result, nil)
	return nil
}

// persistRegistry appends the run's results to the registry file. Existing
// rows are kept as-is so reruns accumulate instead of overwriting history.
func (r *Runner) persistRegistry(registryPath string, rows []*models.ResultRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	existing, err := registry.Read(registryPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read registry: %w", err)
	}

	added := make([]registry.Row, 0, len(rows))
	for _, row := range rows {
		added = append(added, registry.FormatRow(row))
	}

	merged := registry.Merge(existing, added)
	if err := registry.Write(registryPath, merged); err != nil {
		return 0, fmt.Errorf("failed to write registry: %w", err)
	}

	r.logger.Info("registry updated", "path", registryPath, "rows", len(merged))
	return len(merged), nil
}

// recordRun persists the run's outcome to the local ledger. The ledger is
// bookkeeping, a failure here never fails the migration itself.
func (r *Runner) recordRun(roster []models.SourceUser, rosterPath, registryPath string, result *migrate.RunResult, runErr error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("skipping run ledger, database unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("skipping run ledger, migrations failed", "error", err)
		return
	}

	repo := repositories.NewRunRepository(db)
	run := models.NewMigrationRun(0, rosterPath, registryPath)
	run.Start()
	run.SetUsersTotal(len(roster))

	if result != nil {
		run.SetUsersMigrated(result.UsersMigrated)
		run.SetUsersFailed(result.UsersFailed)
		run.SetConversationsMigrated(result.ConversationsMigrated)
	}

	if runErr != nil {
		run.Fail(runErr.Error())
	} else {
		run.Complete()
	}

	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record run", "error", err)
		return
	}
	r.logger.Info("run recorded", "id", run.ID(), "status", run.Status())
}

// rosterPath resolves the roster path from the flag, falling back to config.
func (r *Runner) rosterPath(cmd *cli.Command) string {
	if path := cmd.String("roster"); path != "" {
		return path
	}
	return r.config.Migration.RosterPath
}

// registryPath resolves the registry path from the flag, falling back to config.
func (r *Runner) registryPath(cmd *cli.Command) string {
	if path := cmd.String("registry"); path != "" {
		return path
	}
	return r.config.Migration.RegistryPath
}
