// Messaging tenant API implementation of [Platform]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/harish2111/freshchat-migrations/internal/shared"
	"golang.org/x/oauth2"
)

const defaultPageSize = 50

type hrefLink struct {
	Href string `json:"href"`
}

type pageLink struct {
	Href     string    `json:"href"`
	NextPage *hrefLink `json:"next_page"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type agentsPage struct {
	Agents []Agent   `json:"agents"`
	Link   *pageLink `json:"link"`
}

type channelsResponse struct {
	Channels []Channel `json:"channels"`
}

type conversationsResponse struct {
	Conversations []ConversationRef `json:"conversations"`
}

type messagesPage struct {
	Messages []Message `json:"messages"`
	Link     *hrefLink `json:"link"`
}

type createConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type statusUpdate struct {
	Status string `json:"status"`
}

// Client implements the Platform interface for one messaging tenant.
// Uses [oauth2.StaticTokenSource] for bearer token authentication.
type Client struct {
	name       string
	baseURL    string
	tokens     oauth2.TokenSource
	httpClient *http.Client
	pageSize   int
}

// NewClient creates a tenant client with the given label, API base URL and token.
func NewClient(name, baseURL, apiToken string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		name:       name,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken}),
		httpClient: client,
		pageSize:   defaultPageSize,
	}
}

// SetPageSize overrides the items_per_page used on paginated listings.
func (c *Client) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

func (c *Client) Name() string {
	return c.name
}

// doRequest performs an authenticated HTTP request against the tenant API.
// An endpoint starting with http(s):// is used verbatim, which is how
// pagination links returned by the API are followed. Returns the response
// status code alongside any error.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) (int, error) {
	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		apiURL = c.baseURL + endpoint
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return 0, fmt.Errorf("%w: no API token", shared.ErrMissingCredentials)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("%w: %s %s returned status %d", shared.ErrAPIRequest, method, endpoint, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// SearchUsers looks up contacts by email, falling back to phone when no email
// is given. Returns an empty slice when neither identifier is provided.
func (c *Client) SearchUsers(ctx context.Context, email, phone string) ([]User, error) {
	var endpoint string
	switch {
	case email != "":
		endpoint = "/v2/users?email=" + url.QueryEscape(email)
	case phone != "":
		endpoint = "/v2/users?phone=" + url.QueryEscape(phone)
	default:
		return nil, nil
	}

	var response usersResponse
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	return response.Users, nil
}

// CreateUser creates a contact on the tenant.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if _, err := c.doRequest(ctx, http.MethodPost, "/v2/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAgents retrieves the complete agent directory, following link.next_page
// hrefs until the last page.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	endpoint := fmt.Sprintf("/v2/agents?items_per_page=%d", c.pageSize)

	var agents []Agent
	for endpoint != "" {
		var page agentsPage
		if _, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}

		agents = append(agents, page.Agents...)

		endpoint = ""
		if page.Link != nil && page.Link.NextPage != nil {
			endpoint = page.Link.NextPage.Href
		}
	}

	return agents, nil
}

// ListChannels retrieves the tenant's channels. The channel listing is small
// enough that the API serves it in one page.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	var response channelsResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/v2/channels", nil, &response); err != nil {
		return nil, err
	}
	return response.Channels, nil
}

// ListUserConversations retrieves references to every conversation the given
// user participates in.
func (c *Client) ListUserConversations(ctx context.Context, userID string) ([]ConversationRef, error) {
	endpoint := fmt.Sprintf("/v2/users/%s/conversations", userID)

	var response conversationsResponse
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Conversations, nil
}

// GetConversation retrieves the detail view of a conversation.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	endpoint := fmt.Sprintf("/v2/conversations/%s", conversationID)

	var conversation Conversation
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListMessages retrieves the full message history of a conversation, following
// link hrefs until the last page.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	endpoint := fmt.Sprintf("/v2/conversations/%s/messages?items_per_page=%d", conversationID, c.pageSize)

	var messages []Message
	for endpoint != "" {
		var page messagesPage
		if _, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}

		messages = append(messages, page.Messages...)

		endpoint = ""
		if page.Link != nil {
			endpoint = page.Link.Href
		}
	}

	return messages, nil
}

// CreateConversation creates a conversation with its messages on the tenant
// and returns the ID assigned to it. The tenant answers 200 or 202 on
// success; any other status means the conversation was not accepted.
func (c *Client) CreateConversation(ctx context.Context, payload ConversationPayload) (string, error) {
	var response createConversationResponse
	status, err := c.doRequest(ctx, http.MethodPost, "/v2/conversations", payload, &response)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusAccepted {
		return "", fmt.Errorf("%w: unexpected status %d creating conversation", shared.ErrAPIRequest, status)
	}
	return response.ConversationID, nil
}

// UpdateConversationStatus sets the status of an existing conversation.
func (c *Client) UpdateConversationStatus(ctx context.Context, conversationID, status string) error {
	endpoint := fmt.Sprintf("/v2/conversations/%s", conversationID)

	_, err := c.doRequest(ctx, http.MethodPut, endpoint, statusUpdate{Status: status}, nil)
	return err
}
