package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/observability"
)

// RodEngine starts a headless Chrome via go-rod. With a binary path it
// uses that install; without one the launcher resolves (and if needed
// downloads) a managed browser.
type RodEngine struct {
	name   string
	bin    string
	cfg    *config.Config
	logger *observability.Logger
}

func NewChromeEngine(cfg *config.Config, logger *observability.Logger) *RodEngine {
	return &RodEngine{name: "chrome", bin: cfg.Browser.ChromePath, cfg: cfg, logger: logger}
}

func NewManagedEngine(cfg *config.Config, logger *observability.Logger) *RodEngine {
	return &RodEngine{name: "managed", bin: "", cfg: cfg, logger: logger}
}

func (e *RodEngine) Name() string {
	return e.name
}

func (e *RodEngine) Start(ctx context.Context) (Session, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	if e.bin != "" {
		if _, err := os.Stat(e.bin); err != nil {
			return nil, fmt.Errorf("chrome binary not usable: %w", err)
		}
		l = l.Bin(e.bin)
	} else if e.name == "chrome" {
		return nil, fmt.Errorf("no chrome binary configured")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if ua := e.cfg.HTTP.UserAgent; ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			e.logger.Warn("Failed to set user agent", "engine", e.name, "error", err.Error())
		}
	}

	return &rodSession{
		engine:     e.name,
		browser:    b,
		launcher:   l,
		page:       page,
		navTimeout: e.cfg.GetNavTimeout(),
		idleSettle: e.cfg.GetRequestIdleSettle(),
		logger:     e.logger,
	}, nil
}

// rodSession reuses a single tab for the whole run, the way the upstream
// site expects a visitor to browse.
type rodSession struct {
	engine     string
	browser    *rod.Browser
	launcher   *launcher.Launcher
	page       *rod.Page
	navTimeout time.Duration
	idleSettle time.Duration
	logger     *observability.Logger
}

func (s *rodSession) Navigate(ctx context.Context, url string) (*Page, error) {
	page := s.page.Context(ctx).Timeout(s.navTimeout)

	// Arm the request-idle waiter before navigating so requests fired
	// during load are counted.
	waitIdle := page.WaitRequestIdle(s.idleSettle, nil, nil, nil)

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load of %s failed: %w", url, err)
	}
	waitIdle()

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML of %s: %w", url, err)
	}

	return newPage(url, html, s.screenshot)
}

func (s *rodSession) screenshot(path string) error {
	data, err := s.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *rodSession) Diagnostics(screenshotPath, htmlPath string) {
	if err := s.screenshot(screenshotPath); err != nil {
		s.logger.Warn("Diagnostic screenshot failed", "error", err.Error())
	}
	html, err := s.page.HTML()
	if err != nil {
		s.logger.Warn("Diagnostic HTML dump failed", "error", err.Error())
		return
	}
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		s.logger.Warn("Diagnostic HTML dump failed", "error", err.Error())
	}
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}
