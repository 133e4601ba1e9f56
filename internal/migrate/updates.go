package migrate

import (
	"fmt"

	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveUser Phase = iota
	CreateContact
	FetchConversations
	MigrateConversation
	ConversationDone
	UserDone
	WriteRegistry
)

func (p Phase) String() string {
	switch p {
	case ResolveUser:
		return "resolve_user"
	case CreateContact:
		return "create_contact"
	case FetchConversations:
		return "fetch_conversations"
	case MigrateConversation:
		return "migrate_conversation"
	case ConversationDone:
		return "conversation_done"
	case UserDone:
		return "user_done"
	case WriteRegistry:
		return "write_registry"
	default:
		return ""
	}
}

func resolveUserUpdate(step, total int, user models.SourceUser) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveUser,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %s on destination...", step, total, user.Alias),
	}
}

func createContactUpdate(step, total int, user models.SourceUser) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateContact,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Creating contact for %s...", step, total, user.Alias),
	}
}

func contactCreatedUpdate(step, total int, contact *services.User) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateContact,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Contact created (ID: %s)", contact.ID),
		Data:    contact,
	}
}

func fetchConversationsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchConversations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found %d conversations", count),
	}
}

func migrateConversationUpdate(step, total int, conversationID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MigrateConversation,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Migrating conversation %s...", step, total, conversationID),
	}
}

func conversationDoneUpdate(step, total int, destinationID string) ProgressUpdate {
	if destinationID == "" {
		return ProgressUpdate{
			Phase:   ConversationDone,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] Skipped empty conversation", step, total),
		}
	}
	return ProgressUpdate{
		Phase:   ConversationDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Conversation created (ID: %s)", step, total, destinationID),
	}
}

func conversationFailedUpdate(step, total int, conversationID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConversationDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, conversationID, err),
	}
}

func userDoneUpdate(step, total int, row *models.ResultRow) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UserDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d conversations)", step, total, row.SourceUserID, len(row.ConversationIDs)),
		Data:    row,
	}
}

func userFailedUpdate(step, total int, alias string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UserDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, alias, err),
	}
}

// WriteRegistryUpdate reports that accumulated result rows are being written
// out. Emitted by callers that own the registry file rather than the engine.
func WriteRegistryUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteRegistry,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d rows to the registry...", count),
	}
}
