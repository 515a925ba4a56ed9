package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/liftlog/internal/services"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/desertthunder/liftlog/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	lifts      services.LiftService
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time

	// set when services were injected and must survive Configure
	injected bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Lifts      services.LiftService
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Now        func() time.Time
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
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		lifts:      opts.Lifts,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Now,
		injected:   opts.Lifts != nil,
	}
	r.buildServices()
	return r
}

func (r *Runner) buildServices() {
	if r.injected {
		if r.api == nil {
			r.api = services.NewAPIService(r.config.API.BaseURL, r.httpClient)
		}
		return
	}
	r.api = services.NewAPIService(r.config.API.BaseURL, r.httpClient)
	r.lifts = services.NewLiftAPI(r.api, services.LiftAPIOpts{
		RequestTimeout: r.config.API.RequestTimeout,
		UploadTimeout:  r.config.API.UploadTimeout,
	})
}

// Configure is the root Before hook: it loads the config file and .env overrides,
// validates the result, sets the log level and rebuilds the API clients.
//
// A missing config file is not an error; the embedded defaults are used.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else if !errors.Is(err, os.ErrNotExist) {
			return ctx, fmt.Errorf("failed to stat config file: %w", err)
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	if err := shared.LoadEnv(cmd.String("env-file")); err != nil {
		return ctx, err
	}
	r.config.ApplyEnv()

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	r.buildServices()
	r.logger.Debug("configured", "base_url", r.config.API.BaseURL)
	return ctx, nil
}

// SetLogger replaces the logger used by every command.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// newController creates a [tasks.Controller] sharing the runner's clock and logger.
func (r *Runner) newController() *tasks.Controller {
	return tasks.NewController(tasks.ControllerOpts{
		EnableAI: r.config.Upload.EnableAI,
		Now:      r.now,
		Logger:   r.logger,
	})
}

// drive applies ev and performs effects synchronously until none remain.
func (r *Runner) drive(ctx context.Context, ctrl *tasks.Controller, ev tasks.Event) {
	eff := ctrl.Apply(ev)
	for eff.Request() {
		eff = ctrl.Apply(tasks.Perform(ctx, r.lifts, eff))
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
