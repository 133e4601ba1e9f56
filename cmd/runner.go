package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harish2111/freshchat-migrations/internal/migrate"
	"github.com/harish2111/freshchat-migrations/internal/services"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIClient defines the raw request surface used by the api passthrough command.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
	Post(ctx context.Context, path string, data []byte) (*services.APIResponse, error)
	Put(ctx context.Context, path string, data []byte) (*services.APIResponse, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	source     services.Platform
	dest       services.Platform
	sourceAPI  APIClient
	destAPI    APIClient
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *migrate.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Source     services.Platform
	Dest       services.Platform
	SourceAPI  APIClient
	DestAPI    APIClient
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	// The engine needs both tenants. Commands that use it check for nil and
	// report a configuration error instead of panicking mid-run.
	var engine *migrate.Engine
	if opts.Source != nil && opts.Dest != nil {
		resolver := migrate.NewResolver(
			opts.Source,
			opts.Dest,
			opts.Config.Destination.FixedAgentID,
			opts.Config.Destination.DefaultChannelID,
			opts.Logger,
		)
		throttle := migrate.NewThrottle(opts.Config.Migration.Delay())
		engine = migrate.NewEngine(
			opts.Source,
			opts.Dest,
			resolver,
			throttle,
			opts.Config.Destination.FixedActorID,
			opts.Config.Destination.FixedActorType,
			opts.Logger,
		)
	}

	return &Runner{
		config:     opts.Config,
		source:     opts.Source,
		dest:       opts.Dest,
		sourceAPI:  opts.SourceAPI,
		destAPI:    opts.DestAPI,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the logger used by the runner and its collaborators.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, directoryCommand, registryCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// platformFor selects a tenant client by label.
func (r *Runner) platformFor(name string) (services.Platform, error) {
	switch name {
	case "source":
		if r.source == nil {
			return nil, fmt.Errorf("%w: source tenant not configured", shared.ErrServiceUnavailable)
		}
		return r.source, nil
	case "destination", "dest":
		if r.dest == nil {
			return nil, fmt.Errorf("%w: destination tenant not configured", shared.ErrServiceUnavailable)
		}
		return r.dest, nil
	default:
		return nil, fmt.Errorf("%w: unknown platform %q (use source or destination)", shared.ErrInvalidArgument, name)
	}
}

// apiFor selects a raw API client by tenant label.
func (r *Runner) apiFor(name string) (APIClient, error) {
	switch name {
	case "source":
		if r.sourceAPI == nil {
			return nil, fmt.Errorf("%w: source tenant not configured", shared.ErrServiceUnavailable)
		}
		return r.sourceAPI, nil
	case "destination", "dest":
		if r.destAPI == nil {
			return nil, fmt.Errorf("%w: destination tenant not configured", shared.ErrServiceUnavailable)
		}
		return r.destAPI, nil
	default:
		return nil, fmt.Errorf("%w: unknown platform %q (use source or destination)", shared.ErrInvalidArgument, name)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
