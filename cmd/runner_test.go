package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/harish2111/freshchat-migrations/internal/services"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	tu "github.com/harish2111/freshchat-migrations/internal/testing"
)

type mockAPI struct{}

func (m *mockAPI) Get(ctx context.Context, path string) (*services.APIResponse, error) {
	return &services.APIResponse{StatusCode: 200}, nil
}

func (m *mockAPI) Post(ctx context.Context, path string, data []byte) (*services.APIResponse, error) {
	return &services.APIResponse{StatusCode: 200}, nil
}

func (m *mockAPI) Put(ctx context.Context, path string, data []byte) (*services.APIResponse, error) {
	return &services.APIResponse{StatusCode: 200}, nil
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := &tu.MockPlatform{}
			dest := &tu.MockPlatform{}
			sourceAPI := &mockAPI{}
			destAPI := &mockAPI{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     source,
				Dest:       dest,
				SourceAPI:  sourceAPI,
				DestAPI:    destAPI,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
			if runner.dest != dest {
				t.Error("expected dest to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built when both tenants are set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with missing tenant leaves engine nil", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Source: &tu.MockPlatform{},
			})

			if runner.engine != nil {
				t.Error("expected nil engine without a destination tenant")
			}
		})
	})

	t.Run("platformFor", func(t *testing.T) {
		source := &tu.MockPlatform{}
		dest := &tu.MockPlatform{}
		runner := NewRunner(RunnerOpts{Source: source, Dest: dest})

		t.Run("selects source", func(t *testing.T) {
			svc, err := runner.platformFor("source")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if svc != source {
				t.Error("expected the source tenant")
			}
		})

		t.Run("selects destination with either label", func(t *testing.T) {
			for _, label := range []string{"destination", "dest"} {
				svc, err := runner.platformFor(label)
				if err != nil {
					t.Fatalf("expected no error for %q, got %v", label, err)
				}
				if svc != dest {
					t.Errorf("expected the destination tenant for %q", label)
				}
			}
		})

		t.Run("rejects unknown label", func(t *testing.T) {
			_, err := runner.platformFor("other")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("reports unconfigured tenant", func(t *testing.T) {
			empty := NewRunner(RunnerOpts{})
			_, err := empty.platformFor("source")
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("apiFor", func(t *testing.T) {
		sourceAPI := &mockAPI{}
		destAPI := &mockAPI{}
		runner := NewRunner(RunnerOpts{SourceAPI: sourceAPI, DestAPI: destAPI})

		t.Run("selects source", func(t *testing.T) {
			api, err := runner.apiFor("source")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if api != sourceAPI {
				t.Error("expected the source API client")
			}
		})

		t.Run("selects destination", func(t *testing.T) {
			api, err := runner.apiFor("dest")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if api != destAPI {
				t.Error("expected the destination API client")
			}
		})

		t.Run("rejects unknown label", func(t *testing.T) {
			_, err := runner.apiFor("proxy")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("reports unconfigured tenant", func(t *testing.T) {
			empty := NewRunner(RunnerOpts{})
			_, err := empty.apiFor("destination")
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}
