package browser

import (
	"context"
	"fmt"
	"strings"

	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/observability"
)

// Session is one browsing session against the upstream site. A run opens
// exactly one session and closes it whether or not the run completed.
type Session interface {
	// Navigate loads a URL and returns a snapshot of the rendered page.
	// The call is bounded by the configured navigation timeout.
	Navigate(ctx context.Context, url string) (*Page, error)

	// Diagnostics dumps the current page (screenshot + raw HTML) to the
	// given paths. Best-effort: failures are logged, never returned.
	Diagnostics(screenshotPath, htmlPath string)

	Close() error
}

// Engine is a way of starting a Session. Engines are tried in order until
// one starts.
type Engine interface {
	Name() string
	Start(ctx context.Context) (Session, error)
}

// EngineFailure records why one engine did not start.
type EngineFailure struct {
	Name string
	Err  error
}

// NoEngineAvailableError means every configured engine failed to start.
// It is fatal to the run.
type NoEngineAvailableError struct {
	Failures []EngineFailure
}

func (e *NoEngineAvailableError) Error() string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Sprintf("no browser engine available: %s", strings.Join(reasons, "; "))
}

// Launch tries each engine in order and returns the first session that
// starts. All failures are collected into NoEngineAvailableError.
func Launch(ctx context.Context, logger *observability.Logger, engines ...Engine) (Session, error) {
	failures := make([]EngineFailure, 0, len(engines))

	for _, engine := range engines {
		logger.Info("Trying to start engine", "engine", engine.Name())

		session, err := engine.Start(ctx)
		if err != nil {
			logger.Warn("Engine failed to start",
				"engine", engine.Name(),
				"error", err.Error(),
			)
			failures = append(failures, EngineFailure{Name: engine.Name(), Err: err})
			continue
		}

		logger.Info("Engine started", "engine", engine.Name())
		return session, nil
	}

	return nil, &NoEngineAvailableError{Failures: failures}
}

// EnginesFromConfig builds the configured engine chain.
func EnginesFromConfig(cfg *config.Config, logger *observability.Logger) ([]Engine, error) {
	engines := make([]Engine, 0, len(cfg.Browser.Engines))
	for _, name := range cfg.Browser.Engines {
		switch name {
		case "chrome":
			engines = append(engines, NewChromeEngine(cfg, logger))
		case "managed":
			engines = append(engines, NewManagedEngine(cfg, logger))
		case "static":
			engines = append(engines, NewStaticEngine(cfg, logger))
		default:
			return nil, fmt.Errorf("unknown browser engine: %s", name)
		}
	}
	return engines, nil
}
