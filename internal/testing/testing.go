// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/harish2111/freshchat-migrations/internal/services"
)

// MockPlatform is a zero-behavior test double for [services.Platform]
type MockPlatform struct{}

func (m *MockPlatform) SearchUsers(ctx context.Context, email, phone string) ([]services.User, error) {
	return nil, nil
}

func (m *MockPlatform) CreateUser(ctx context.Context, req services.CreateUserRequest) (*services.User, error) {
	return &services.User{}, nil
}

func (m *MockPlatform) ListAgents(ctx context.Context) ([]services.Agent, error) {
	return []services.Agent{}, nil
}

func (m *MockPlatform) ListChannels(ctx context.Context) ([]services.Channel, error) {
	return []services.Channel{}, nil
}

func (m *MockPlatform) ListUserConversations(ctx context.Context, userID string) ([]services.ConversationRef, error) {
	return []services.ConversationRef{}, nil
}

func (m *MockPlatform) GetConversation(ctx context.Context, conversationID string) (*services.Conversation, error) {
	return &services.Conversation{}, nil
}

func (m *MockPlatform) ListMessages(ctx context.Context, conversationID string) ([]services.Message, error) {
	return []services.Message{}, nil
}

func (m *MockPlatform) CreateConversation(ctx context.Context, payload services.ConversationPayload) (string, error) {
	return "", nil
}

func (m *MockPlatform) UpdateConversationStatus(ctx context.Context, conversationID, status string) error {
	return nil
}

func (m *MockPlatform) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
