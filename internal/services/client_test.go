package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harish2111/freshchat-migrations/internal/shared"
)

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("NewClient", func(t *testing.T) {
		client := NewClient("source", "https://api.example.com/", "token", nil)

		if client.Name() != "source" {
			t.Errorf("expected name 'source', got %s", client.Name())
		}
		if client.baseURL != "https://api.example.com" {
			t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
		}
		if client.pageSize != defaultPageSize {
			t.Errorf("expected default page size %d, got %d", defaultPageSize, client.pageSize)
		}
	})

	t.Run("SetPageSize", func(t *testing.T) {
		client := NewClient("source", "https://api.example.com", "token", nil)

		client.SetPageSize(25)
		if client.pageSize != 25 {
			t.Errorf("expected page size 25, got %d", client.pageSize)
		}

		client.SetPageSize(0)
		if client.pageSize != 25 {
			t.Error("expected zero page size to be ignored")
		}
	})

	t.Run("Sends Bearer Token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(channelsResponse{})
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "secret_token", server.Client())
		if _, err := client.ListChannels(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotAuth != "Bearer secret_token" {
			t.Errorf("expected bearer auth header, got %q", gotAuth)
		}
	})

	t.Run("SearchUsers", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode(usersResponse{Users: []User{{ID: "u1"}}})
		}))
		defer server.Close()

		client := NewClient("destination", server.URL, "token", server.Client())

		t.Run("Email Takes Precedence", func(t *testing.T) {
			users, err := client.SearchUsers(ctx, "a@b.com", "+15551234")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(users) != 1 || users[0].ID != "u1" {
				t.Errorf("expected one user u1, got %+v", users)
			}
			if gotQuery != "email=a%40b.com" {
				t.Errorf("expected email query, got %q", gotQuery)
			}
		})

		t.Run("Phone Fallback", func(t *testing.T) {
			if _, err := client.SearchUsers(ctx, "", "+15551234"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotQuery != "phone=%2B15551234" {
				t.Errorf("expected phone query, got %q", gotQuery)
			}
		})

		t.Run("No Identifiers", func(t *testing.T) {
			gotQuery = "unchanged"
			users, err := client.SearchUsers(ctx, "", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if users != nil {
				t.Errorf("expected nil users, got %+v", users)
			}
			if gotQuery != "unchanged" {
				t.Error("expected no request to be made")
			}
		})
	})

	t.Run("CreateUser", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}

			var req CreateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req.FirstName != "Ada" {
				t.Errorf("expected first name Ada, got %s", req.FirstName)
			}

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(User{ID: "new_user", FirstName: req.FirstName})
		}))
		defer server.Close()

		client := NewClient("destination", server.URL, "token", server.Client())
		user, err := client.CreateUser(ctx, CreateUserRequest{FirstName: "Ada", Email: "ada@example.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "new_user" {
			t.Errorf("expected created user ID, got %s", user.ID)
		}
	})

	t.Run("ListAgents Follows Pagination", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			page := r.URL.Query().Get("page")
			switch page {
			case "2":
				json.NewEncoder(w).Encode(agentsPage{Agents: []Agent{{ID: "a3", Email: "c@x.com"}}})
			default:
				json.NewEncoder(w).Encode(agentsPage{
					Agents: []Agent{{ID: "a1", Email: "a@x.com"}, {ID: "a2", Email: "b@x.com"}},
					Link:   &pageLink{NextPage: &hrefLink{Href: server.URL + "/v2/agents?page=2"}},
				})
			}
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "token", server.Client())
		agents, err := client.ListAgents(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(agents) != 3 {
			t.Fatalf("expected 3 agents across pages, got %d", len(agents))
		}
		if agents[2].ID != "a3" {
			t.Errorf("expected second page appended last, got %s", agents[2].ID)
		}
	})

	t.Run("ListMessages Follows Pagination", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				json.NewEncoder(w).Encode(messagesPage{Messages: []Message{{ActorID: "m3"}}})
				return
			}
			json.NewEncoder(w).Encode(messagesPage{
				Messages: []Message{{ActorID: "m1"}, {ActorID: "m2"}},
				Link:     &hrefLink{Href: server.URL + "/v2/conversations/c1/messages?page=2"},
			})
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "token", server.Client())
		messages, err := client.ListMessages(ctx, "c1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(messages) != 3 {
			t.Fatalf("expected 3 messages across pages, got %d", len(messages))
		}
	})

	t.Run("ListUserConversations", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/users/u1/conversations" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(conversationsResponse{Conversations: []ConversationRef{{ID: "c1"}, {ID: "c2"}}})
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "token", server.Client())
		refs, err := client.ListUserConversations(ctx, "u1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(refs) != 2 {
			t.Errorf("expected 2 conversation refs, got %d", len(refs))
		}
	})

	t.Run("GetConversation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Conversation{
				ConversationID:  "c1",
				ChannelID:       "ch1",
				AssignedAgentID: "agent1",
				CreatedTime:     "2024-01-01T00:00:00Z",
			})
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "token", server.Client())
		conv, err := client.GetConversation(ctx, "c1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if conv.AssignedAgentID != "agent1" {
			t.Errorf("expected assigned agent, got %s", conv.AssignedAgentID)
		}
	})

	t.Run("CreateConversation", func(t *testing.T) {
		t.Run("Accepted", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload ConversationPayload
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode payload: %v", err)
				}
				if payload.Status != "new" {
					t.Errorf("expected status new, got %s", payload.Status)
				}
				w.WriteHeader(http.StatusAccepted)
				json.NewEncoder(w).Encode(createConversationResponse{ConversationID: "dest_c1"})
			}))
			defer server.Close()

			client := NewClient("destination", server.URL, "token", server.Client())
			id, err := client.CreateConversation(ctx, ConversationPayload{Status: "new", Users: []UserRef{{ID: "u1"}}})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != "dest_c1" {
				t.Errorf("expected conversation ID dest_c1, got %s", id)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewClient("destination", server.URL, "token", server.Client())
			_, err := client.CreateConversation(ctx, ConversationPayload{Status: "new"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Unexpected Success Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(createConversationResponse{ConversationID: "dest_c1"})
			}))
			defer server.Close()

			client := NewClient("destination", server.URL, "token", server.Client())
			_, err := client.CreateConversation(ctx, ConversationPayload{Status: "new"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest for status 201, got %v", err)
			}
		})
	})

	t.Run("UpdateConversationStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}

			var update statusUpdate
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				t.Fatalf("failed to decode update: %v", err)
			}
			if update.Status != "resolved" {
				t.Errorf("expected status resolved, got %s", update.Status)
			}
			fmt.Fprint(w, "{}")
		}))
		defer server.Close()

		client := NewClient("destination", server.URL, "token", server.Client())
		if err := client.UpdateConversationStatus(ctx, "c1", "resolved"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Raw Get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"agents":[]}`)
		}))
		defer server.Close()

		client := NewClient("source", server.URL, "token", server.Client())
		resp, err := client.Get(ctx, "/v2/agents")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected response to be detected as JSON")
		}
	})

	t.Run("Raw Post Passes Body Through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["status"] != "new" {
				t.Errorf("expected status field, got %+v", body)
			}
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "not json")
		}))
		defer server.Close()

		client := NewClient("destination", server.URL, "token", server.Client())
		resp, err := client.Post(ctx, "/v2/conversations", []byte(`{"status":"new"}`))
		if err != nil {
			t.Fatalf("expected raw request to surface status instead of error, got %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
		if resp.IsJSON {
			t.Error("expected non-JSON body")
		}
	})
}
