// package services defines interface Platform for interacting with messaging tenant HTTP APIs
package services

import (
	"context"
)

// MessageTypeSystem marks auto-generated messages that are dropped during migration.
const MessageTypeSystem = "system"

// Platform defines the interface for a messaging support tenant that can look
// up and create contacts and read and write conversations.
type Platform interface {
	// SearchUsers retrieves users matching the given email or phone.
	// Email takes precedence; phone is only queried when email is empty.
	SearchUsers(ctx context.Context, email, phone string) ([]User, error)

	// CreateUser creates a new contact on the tenant.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// ListAgents retrieves the full agent directory, following pagination links.
	ListAgents(ctx context.Context) ([]Agent, error)

	// ListChannels retrieves the tenant's message channels.
	ListChannels(ctx context.Context) ([]Channel, error)

	// ListUserConversations retrieves references to all conversations a user participates in.
	ListUserConversations(ctx context.Context, userID string) ([]ConversationRef, error)

	// GetConversation retrieves a single conversation by ID.
	GetConversation(ctx context.Context, conversationID string) (*Conversation, error)

	// ListMessages retrieves all messages of a conversation, following pagination links.
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)

	// CreateConversation creates a conversation with its messages and returns the new conversation ID.
	CreateConversation(ctx context.Context, payload ConversationPayload) (string, error)

	// UpdateConversationStatus updates the status of an existing conversation.
	UpdateConversationStatus(ctx context.Context, conversationID, status string) error

	// Name returns the tenant label (e.g., "source", "destination")
	Name() string
}

// User represents a contact on either tenant.
type User struct {
	ID         string     `json:"id,omitempty"`
	FirstName  string     `json:"first_name,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Property is a custom key/value field attached to a contact.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CreateUserRequest is the payload for creating a contact.
type CreateUserRequest struct {
	FirstName  string     `json:"first_name,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Agent represents a member of a tenant's agent directory.
type Agent struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Channel represents a message channel (topic) on a tenant.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConversationRef is a lightweight pointer to a conversation, as returned by
// per-user conversation listings.
type ConversationRef struct {
	ID string `json:"id"`
}

// Conversation represents the detail view of a conversation.
type Conversation struct {
	ConversationID  string `json:"conversation_id"`
	ChannelID       string `json:"channel_id"`
	AssignedAgentID string `json:"assigned_agent_id"`
	Status          string `json:"status"`
	CreatedTime     string `json:"created_time"`
}

// Message represents one message inside a conversation.
type Message struct {
	ActorID      string        `json:"actor_id,omitempty"`
	ActorType    string        `json:"actor_type,omitempty"`
	MessageType  string        `json:"message_type,omitempty"`
	ChannelID    string        `json:"channel_id,omitempty"`
	CreatedTime  string        `json:"created_time,omitempty"`
	MessageParts []MessagePart `json:"message_parts,omitempty"`
}

// MessagePart holds one content fragment of a message. Exactly one of the
// fields is set.
type MessagePart struct {
	Text  *TextPart  `json:"text,omitempty"`
	Image *ImagePart `json:"image,omitempty"`
	Video *VideoPart `json:"video,omitempty"`
}

// TextPart is a plain text fragment.
type TextPart struct {
	Content string `json:"content"`
}

// ImagePart is an image fragment referenced by URL.
type ImagePart struct {
	URL string `json:"url"`
}

// VideoPart is a video fragment referenced by URL.
type VideoPart struct {
	URL string `json:"url"`
}

// UserRef identifies a conversation participant by ID.
type UserRef struct {
	ID string `json:"id"`
}

// ConversationPayload is the request body for creating a conversation with
// its full message history.
type ConversationPayload struct {
	Status      string    `json:"status"`
	Messages    []Message `json:"messages"`
	CreatedTime string    `json:"created_time,omitempty"`
	Users       []UserRef `json:"users"`
	ChannelID   string    `json:"channel_id,omitempty"`
	AgentID     string    `json:"agent_id,omitempty"`
}
