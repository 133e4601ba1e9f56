package main

import (
	"context"
	"fmt"

	"github.com/harish2111/freshchat-migrations/internal/registry"
	"github.com/harish2111/freshchat-migrations/internal/repositories"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/urfave/cli/v3"
)

// RegistryShow prints the registry of contacts migrated so far.
func (r *Runner) RegistryShow(ctx context.Context, cmd *cli.Command) error {
	registryPath := r.registryPath(cmd)
	asJSON := cmd.Bool("json")

	rows, err := registry.Read(registryPath)
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}

	if asJSON {
		return r.writeJSON(rows, true)
	}

	if len(rows) == 0 {
		r.writePlain("Registry %s is empty.\n", registryPath)
		return nil
	}

	r.writePlain("Registry %s (%d contacts):\n\n", registryPath, len(rows))
	for i, row := range rows {
		r.writePlain("%d. %s\n", i+1, row.Name)
		r.writePlain("   Source: %s → Destination: %s\n", row.SourceUserID, row.DestinationUserID)
		if row.Email != "" {
			r.writePlain("   Email: %s\n", row.Email)
		}
		if row.ConversationIDs != "" {
			r.writePlain("   Conversations: %s\n", row.ConversationIDs)
		}
		r.writePlain("\n")
	}
	return nil
}

// RegistryRuns lists recorded migration runs from the local ledger.
func (r *Runner) RegistryRuns(ctx context.Context, cmd *cli.Command) error {
	status := cmd.String("status")
	asJSON := cmd.Bool("json")

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	criteria := map[string]any{}
	if status != "" {
		criteria["status"] = status
	}

	repo := repositories.NewRunRepository(db)
	runs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if asJSON {
		type runView struct {
			ID                    string `json:"id"`
			Sequence              int    `json:"sequence"`
			RosterPath            string `json:"roster_path"`
			RegistryPath          string `json:"registry_path"`
			UsersTotal            int    `json:"users_total"`
			UsersMigrated         int    `json:"users_migrated"`
			UsersFailed           int    `json:"users_failed"`
			ConversationsMigrated int    `json:"conversations_migrated"`
			Status                string `json:"status"`
			ErrorMessage          string `json:"error_message,omitempty"`
		}
		views := make([]runView, 0, len(runs))
		for _, run := range runs {
			views = append(views, runView{
				ID:                    run.ID(),
				Sequence:              run.Sequence(),
				RosterPath:            run.RosterPath(),
				RegistryPath:          run.RegistryPath(),
				UsersTotal:            run.UsersTotal(),
				UsersMigrated:         run.UsersMigrated(),
				UsersFailed:           run.UsersFailed(),
				ConversationsMigrated: run.ConversationsMigrated(),
				Status:                run.Status(),
				ErrorMessage:          run.ErrorMessage(),
			})
		}
		return r.writeJSON(views, true)
	}

	if len(runs) == 0 {
		r.writePlainln("No runs recorded yet.")
		return nil
	}

	r.writePlain("Found %d runs:\n\n", len(runs))
	for _, run := range runs {
		r.writePlain("#%d %s [%s]\n", run.Sequence(), run.ID(), run.Status())
		r.writePlain("   Roster: %s\n", run.RosterPath())
		r.writePlain("   Contacts: %d/%d migrated, %d failed\n", run.UsersMigrated(), run.UsersTotal(), run.UsersFailed())
		r.writePlain("   Conversations: %d\n", run.ConversationsMigrated())
		if run.ErrorMessage() != "" {
			r.writePlain("   Error: %s\n", run.ErrorMessage())
		}
		if run.StartedAt() != nil {
			r.writePlain("   Started: %s\n", run.StartedAt().Format("2006-01-02 15:04:05"))
		}
		r.writePlain("\n")
	}
	return nil
}
