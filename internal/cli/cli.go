package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/specialistvlad/novagraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// DefaultBlockInterval paces endless runs when --block-interval is not given.
const DefaultBlockInterval = 10 * time.Millisecond

// commandLine is the set of flags and positional layout paths.
type commandLine struct {
	Layout          []string      `arg:"-l,--layout,separate" help:"layout file or directory (.hcl, .yaml, .yml); repeatable"`
	Blocks          int           `arg:"-n,--blocks" help:"number of blocks to run, 0 runs until interrupted"`
	BlockInterval   time.Duration `arg:"--block-interval" help:"time between block starts"`
	Workers         int           `arg:"-w,--workers" help:"dispatcher workers, 0 uses one per CPU"`
	Validate        bool          `arg:"--validate" help:"check every new plan before dispatching it"`
	LogLevel        string        `arg:"--log-level" help:"debug, info, warn or error"`
	LogFormat       string        `arg:"--log-format" help:"text or json"`
	HealthcheckPort int           `arg:"--healthcheck-port" help:"port for the HTTP health check server, 0 is disabled"`
	PlanDB          string        `arg:"--plan-db" help:"sqlite file journaling compiled plans"`
	Paths           []string      `arg:"positional" help:"more layout paths"`
}

func (commandLine) Description() string {
	return "novagraph - compiles a tree of synths and groups into an execution plan and dispatches it block by block."
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// Pre-populated fields act as defaults.
	c := commandLine{
		BlockInterval: DefaultBlockInterval,
		LogLevel:      "info",
		LogFormat:     "text",
	}
	p, err := arg.NewParser(arg.Config{Program: "novagraph"}, &c)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if err := p.Parse(args); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(output)
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	config, err := app.NewConfig(app.Config{
		LayoutPaths:     append(c.Layout, c.Paths...),
		Blocks:          c.Blocks,
		BlockInterval:   c.BlockInterval,
		WorkerCount:     c.Workers,
		ValidatePlans:   c.Validate,
		LogFormat:       strings.ToLower(c.LogFormat),
		LogLevel:        strings.ToLower(c.LogLevel),
		HealthcheckPort: c.HealthcheckPort,
		PlanDB:          c.PlanDB,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "layouts", len(config.LayoutPaths))
	return config, false, nil
}
