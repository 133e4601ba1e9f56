package migrate

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/services"
	"github.com/harish2111/freshchat-migrations/internal/shared"
)

// Resolver maps source tenant identities onto the destination tenant.
//
// Agent and channel directories are fetched lazily and cached for the run.
// A failed fetch leaves the cache unloaded so the next lookup retries instead
// of pinning every conversation to the fallback values.
type Resolver struct {
	source services.Platform
	dest   services.Platform
	logger *log.Logger

	fixedAgentID     string
	defaultChannelID string

	sourceAgents   []services.Agent
	destAgents     []services.Agent
	agentsLoaded   bool
	sourceChannels []services.Channel
	destChannels   []services.Channel
	channelsLoaded bool
}

// NewResolver creates a resolver with the configured fallback agent and channel.
func NewResolver(source, dest services.Platform, fixedAgentID, defaultChannelID string, logger *log.Logger) *Resolver {
	return &Resolver{
		source:           source,
		dest:             dest,
		logger:           logger,
		fixedAgentID:     fixedAgentID,
		defaultChannelID: defaultChannelID,
	}
}

// ResolveUser finds the destination contact matching a roster entry, by email
// first and phone second. Returns an empty string when no match exists, and
// skips the lookup entirely when the entry carries no contact information.
func (r *Resolver) ResolveUser(ctx context.Context, user models.SourceUser) string {
	if !user.HasContactInfo() {
		r.logger.Warn("roster entry has no email or phone, cannot resolve", "alias", user.Alias)
		return ""
	}

	users, err := r.dest.SearchUsers(ctx, user.Email, user.Phone)
	if err != nil {
		r.logger.Warn("contact lookup failed", "alias", user.Alias, "error", err)
		return ""
	}
	if len(users) == 0 {
		return ""
	}

	return users[0].ID
}

// CreateUser creates a destination contact for a roster entry. The source
// alias is preserved in the cf_old_alias custom property so migrated contacts
// stay traceable. Phone values too short to be real numbers are dropped.
func (r *Resolver) CreateUser(ctx context.Context, user models.SourceUser) (*services.User, error) {
	req := services.CreateUserRequest{
		FirstName: user.Name,
		Email:     user.Email,
		Properties: []services.Property{
			{Name: "cf_old_alias", Value: user.Alias},
		},
	}
	if len(user.Phone) > 4 {
		req.Phone = user.Phone
	}

	created, err := r.dest.CreateUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrContactCreate, user.Alias, err)
	}

	r.logger.Info("contact created", "alias", user.Alias, "id", created.ID)
	return created, nil
}

// ResolveAgent maps a source agent ID to the destination agent with the same
// email. Falls back to the fixed agent when the source agent is unknown, has
// no destination counterpart, or a directory fetch fails.
func (r *Resolver) ResolveAgent(ctx context.Context, sourceAgentID string) string {
	if sourceAgentID == "" {
		return r.fixedAgentID
	}

	if !r.agentsLoaded {
		sourceAgents, err := r.source.ListAgents(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch source agent directory", "error", err)
			return r.fixedAgentID
		}
		destAgents, err := r.dest.ListAgents(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch destination agent directory", "error", err)
			return r.fixedAgentID
		}
		r.sourceAgents = sourceAgents
		r.destAgents = destAgents
		r.agentsLoaded = true
	}

	var email string
	for _, agent := range r.sourceAgents {
		if agent.ID == sourceAgentID {
			email = agent.Email
			break
		}
	}
	if email == "" {
		return r.fixedAgentID
	}

	for _, agent := range r.destAgents {
		if agent.Email == email {
			return agent.ID
		}
	}

	return r.fixedAgentID
}

// ResolveChannel maps a source channel ID to the destination channel with the
// same name. Falls back to the default channel when the channel is unknown,
// unmatched, or a listing fetch fails.
func (r *Resolver) ResolveChannel(ctx context.Context, sourceChannelID string) string {
	if sourceChannelID == "" {
		return r.defaultChannelID
	}

	if !r.channelsLoaded {
		sourceChannels, err := r.source.ListChannels(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch source channels", "error", err)
			return r.defaultChannelID
		}
		destChannels, err := r.dest.ListChannels(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch destination channels", "error", err)
			return r.defaultChannelID
		}
		r.sourceChannels = sourceChannels
		r.destChannels = destChannels
		r.channelsLoaded = true
	}

	var name string
	for _, channel := range r.sourceChannels {
		if channel.ID == sourceChannelID {
			name = channel.Name
			break
		}
	}
	if name == "" {
		return r.defaultChannelID
	}

	for _, channel := range r.destChannels {
		if channel.Name == name {
			return channel.ID
		}
	}

	return r.defaultChannelID
}
