package migrate

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/services"
	"github.com/harish2111/freshchat-migrations/internal/shared"
)

// UserFailure records a roster entry that could not be migrated.
type UserFailure struct {
	Alias string
	Err   error
}

// RunResult contains all data from a full roster migration.
type RunResult struct {
	Rows                  []*models.ResultRow // Registry rows for migrated contacts
	UsersTotal            int                 // Roster entries processed
	UsersMigrated         int                 // Contacts migrated successfully
	UsersFailed           int                 // Contacts that failed
	ConversationsMigrated int                 // Conversations created on the destination
	Failures              []UserFailure       // Individual failure details
}

// Engine orchestrates the contact migration pipeline.
// Contains dependencies on both tenant clients, identity resolution and pacing.
type Engine struct {
	source   services.Platform
	dest     services.Platform
	resolver *Resolver
	throttle *Throttle
	logger   *log.Logger

	fixedActorID   string
	fixedActorType string
}

// NewEngine creates an Engine with the provided tenants and collaborators.
// Messages whose author cannot be mapped are attributed to fixedActorID with
// fixedActorType.
func NewEngine(source, dest services.Platform, resolver *Resolver, throttle *Throttle, fixedActorID, fixedActorType string, logger *log.Logger) *Engine {
	return &Engine{
		source:         source,
		dest:           dest,
		resolver:       resolver,
		throttle:       throttle,
		logger:         logger,
		fixedActorID:   fixedActorID,
		fixedActorType: fixedActorType,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run migrates every roster entry in order, pacing writes between contacts.
// Individual contact failures are recorded and do not stop the run.
func (e *Engine) Run(ctx context.Context, roster []models.SourceUser, progress chan<- ProgressUpdate) (*RunResult, error) {
	if e.source == nil || e.dest == nil {
		return nil, fmt.Errorf("%w: tenant client not initialized", shared.ErrServiceUnavailable)
	}

	result := &RunResult{UsersTotal: len(roster)}

	for i, user := range roster {
		e.sendProgress(progress, resolveUserUpdate(i+1, len(roster), user))

		row, err := e.MigrateUser(ctx, user, progress)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}

			e.logger.Error("contact migration failed", "alias", user.Alias, "error", err)
			result.UsersFailed++
			result.Failures = append(result.Failures, UserFailure{Alias: user.Alias, Err: err})
			e.sendProgress(progress, userFailedUpdate(i+1, len(roster), user.Alias, err))
		} else {
			result.Rows = append(result.Rows, row)
			result.UsersMigrated++
			result.ConversationsMigrated += len(row.ConversationIDs)
			e.sendProgress(progress, userDoneUpdate(i+1, len(roster), row))
		}

		if err := e.throttle.Wait(ctx); err != nil {
			return result, err
		}
	}

	return result, nil
}

// MigrateUser migrates one roster entry: the contact itself, then every
// conversation it participates in. Contact creation failures abort the entry;
// a failed conversation listing degrades to a contact-only migration.
func (e *Engine) MigrateUser(ctx context.Context, user models.SourceUser, progress chan<- ProgressUpdate) (*models.ResultRow, error) {
	destUserID := e.resolver.ResolveUser(ctx, user)
	if destUserID == "" {
		e.sendProgress(progress, createContactUpdate(1, 1, user))

		created, err := e.resolver.CreateUser(ctx, user)
		if err != nil {
			return nil, err
		}
		destUserID = created.ID
		e.sendProgress(progress, contactCreatedUpdate(1, 1, created))
	}

	row := models.NewResultRow(user, destUserID)

	refs, err := e.source.ListUserConversations(ctx, user.Alias)
	if err != nil {
		e.logger.Warn("failed to list conversations, migrating contact only", "alias", user.Alias, "error", err)
		return row, nil
	}

	e.sendProgress(progress, fetchConversationsUpdate(1, 1, len(refs)))

	for i, ref := range refs {
		e.sendProgress(progress, migrateConversationUpdate(i+1, len(refs), ref.ID))

		destConversationID, err := e.migrateConversation(ctx, ref.ID, user.Alias, destUserID)
		if err != nil {
			if ctx.Err() != nil {
				return row, ctx.Err()
			}

			e.logger.Warn("conversation migration failed", "conversation", ref.ID, "error", err)
			e.sendProgress(progress, conversationFailedUpdate(i+1, len(refs), ref.ID, err))
		} else {
			if destConversationID != "" {
				row.ConversationIDs = append(row.ConversationIDs, destConversationID)
			}
			e.sendProgress(progress, conversationDoneUpdate(i+1, len(refs), destConversationID))
		}

		if err := e.throttle.Wait(ctx); err != nil {
			return row, err
		}
	}

	return row, nil
}

// migrateConversation copies one conversation onto the destination tenant.
// Returns an empty ID without error when the conversation has no replayable
// messages. A failed message fetch is treated as an empty history.
func (e *Engine) migrateConversation(ctx context.Context, conversationID, sourceUserID, destUserID string) (string, error) {
	conversation, err := e.source.GetConversation(ctx, conversationID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch conversation: %w", err)
	}

	messages, err := e.source.ListMessages(ctx, conversationID)
	if err != nil {
		e.logger.Warn("failed to fetch messages, treating conversation as empty", "conversation", conversationID, "error", err)
		messages = nil
	}

	sortMessages(messages)
	messages = filterSystemMessages(messages)
	if len(messages) == 0 {
		return "", nil
	}

	agentID := e.resolver.ResolveAgent(ctx, conversation.AssignedAgentID)
	channelID := e.resolver.ResolveChannel(ctx, conversation.ChannelID)

	transformed := make([]services.Message, len(messages))
	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg services.Message) {
			defer wg.Done()
			transformed[i] = TransformMessage(msg, sourceUserID, destUserID, channelID, e.fixedActorID, e.fixedActorType)
		}(i, msg)
	}
	wg.Wait()

	payload := services.ConversationPayload{
		Status:      "new",
		Messages:    transformed,
		CreatedTime: conversation.CreatedTime,
		Users:       []services.UserRef{{ID: destUserID}},
		ChannelID:   channelID,
		AgentID:     agentID,
	}

	destConversationID, err := e.dest.CreateConversation(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create conversation: %w", err)
	}

	// Imported conversations are history, not an open queue for agents.
	if err := e.dest.UpdateConversationStatus(ctx, destConversationID, "resolved"); err != nil {
		e.logger.Warn("failed to resolve migrated conversation", "conversation", destConversationID, "error", err)
	}

	return destConversationID, nil
}
