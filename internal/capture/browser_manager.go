// Package capture renders monitored pages in a headless browser and emits
// full-page PNG buffers.
package capture

import (
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog"

	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

// BrowserManager owns one headless browser instance shared by all captures.
// Captures are sequential, so a single instance is enough and avoids
// contention on the browser session.
type BrowserManager struct {
	cfg       config.CaptureConfig
	logger    zerolog.Logger
	browser   *rod.Browser
	launcher  *launcher.Launcher
	mutex     sync.Mutex
	isRunning bool
}

// NewBrowserManager creates a new browser manager.
func NewBrowserManager(cfg config.CaptureConfig, logger zerolog.Logger) *BrowserManager {
	return &BrowserManager{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserManager").Logger(),
	}
}

// Start launches the browser. Calling Start on a running manager is a no-op.
func (bm *BrowserManager) Start() error {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	if bm.isRunning {
		return nil
	}

	l := launcher.New().
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("hide-scrollbars").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if bm.cfg.ChromePath != "" {
		l = l.Bin(bm.cfg.ChromePath)
	}
	if bm.cfg.UserDataDir != "" {
		l = l.UserDataDir(bm.cfg.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return common.WrapError(err, "failed to launch browser")
	}
	bm.launcher = l

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return common.WrapError(err, "failed to connect to browser")
	}
	bm.browser = browser

	bm.isRunning = true
	bm.logger.Info().Bool("stealth", bm.cfg.Stealth).Msg("Headless browser started")
	return nil
}

// Stop closes the browser and cleans up the launcher.
func (bm *BrowserManager) Stop() {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	if !bm.isRunning {
		return
	}

	if bm.browser != nil {
		if err := bm.browser.Close(); err != nil {
			bm.logger.Warn().Err(err).Msg("Failed to close browser")
		}
	}
	if bm.launcher != nil {
		bm.launcher.Cleanup()
	}

	bm.isRunning = false
	bm.logger.Info().Msg("Headless browser stopped")
}

// NewPage opens a fresh blank tab, with stealth applied when configured.
func (bm *BrowserManager) NewPage() (*rod.Page, error) {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	if !bm.isRunning {
		return nil, common.NewError("browser manager not running")
	}

	if bm.cfg.Stealth {
		return stealth.Page(bm.browser)
	}
	return bm.browser.Page(proto.TargetCreateTarget{})
}
