package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// DirectoryAgents lists the agent directory of the selected tenant.
func (r *Runner) DirectoryAgents(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.String("platform")
	asJSON := cmd.Bool("json")

	svc, err := r.platformFor(platform)
	if err != nil {
		return err
	}

	r.logger.Info("fetching agents", "platform", platform)

	agents, err := svc.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch agents: %w", err)
	}

	if asJSON {
		return r.writeJSON(agents, true)
	}

	r.writePlain("Found %d agents on %s:\n\n", len(agents), svc.Name())
	for i, agent := range agents {
		r.writePlain("%d. %s\n", i+1, agent.FirstName)
		r.writePlain("   ID: %s\n", agent.ID)
		if agent.Email != "" {
			r.writePlain("   Email: %s\n", agent.Email)
		}
		r.writePlain("\n")
	}
	return nil
}

// DirectoryMap shows how source agents would map onto destination agents
// during a run: matched by email where possible, otherwise the configured
// fallback agent.
func (r *Runner) DirectoryMap(ctx context.Context, cmd *cli.Command) error {
	source, err := r.platformFor("source")
	if err != nil {
		return err
	}
	dest, err := r.platformFor("destination")
	if err != nil {
		return err
	}

	r.logger.Info("building agent mapping")

	sourceAgents, err := source.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch source agents: %w", err)
	}
	destAgents, err := dest.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch destination agents: %w", err)
	}

	byEmail := make(map[string]string, len(destAgents))
	for _, agent := range destAgents {
		if agent.Email != "" {
			byEmail[agent.Email] = agent.ID
		}
	}

	fallback := r.config.Destination.FixedAgentID
	r.writePlain("Agent mapping (%d source, %d destination):\n\n", len(sourceAgents), len(destAgents))
	for _, agent := range sourceAgents {
		if destID, ok := byEmail[agent.Email]; ok && agent.Email != "" {
			r.writePlain("  %s (%s) → %s\n", agent.FirstName, agent.ID, destID)
		} else {
			r.writePlain("  %s (%s) → fallback %s\n", agent.FirstName, agent.ID, fallback)
		}
	}
	return nil
}

// DirectoryChannels lists the channels of the selected tenant.
func (r *Runner) DirectoryChannels(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.String("platform")
	asJSON := cmd.Bool("json")

	svc, err := r.platformFor(platform)
	if err != nil {
		return err
	}

	r.logger.Info("fetching channels", "platform", platform)

	channels, err := svc.ListChannels(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}

	if asJSON {
		return r.writeJSON(channels, true)
	}

	r.writePlain("Found %d channels on %s:\n\n", len(channels), svc.Name())
	for i, channel := range channels {
		r.writePlain("%d. %s (ID: %s)\n", i+1, channel.Name, channel.ID)
	}
	return nil
}
