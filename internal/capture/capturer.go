package capture

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

// Capturer renders a URL and returns a full-page PNG covering the entire
// scrollable height, not just the viewport.
type Capturer struct {
	cfg      config.CaptureConfig
	browsers *BrowserManager
	logger   zerolog.Logger
}

// NewCapturer creates a new capturer on top of a browser manager.
func NewCapturer(cfg config.CaptureConfig, browsers *BrowserManager, logger zerolog.Logger) *Capturer {
	return &Capturer{
		cfg:      cfg,
		browsers: browsers,
		logger:   logger.With().Str("component", "Capturer").Logger(),
	}
}

// CaptureFullPage navigates to pageURL, waits for the load to settle,
// sizes the viewport to the full scrollable height, and shoots. Navigation
// and load waiting share one bounded timeout; a failure is returned as a
// RenderError for the caller to record against this URL alone.
func (c *Capturer) CaptureFullPage(ctx context.Context, pageURL string) ([]byte, error) {
	page, err := c.browsers.NewPage()
	if err != nil {
		return nil, common.NewRenderError(pageURL, "failed to open tab", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			c.logger.Warn().Err(err).Str("url", pageURL).Msg("Failed to close tab")
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.NavigationTimeoutSecs)*time.Second)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(pageURL); err != nil {
		return nil, common.NewRenderError(pageURL, "navigation failed", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, common.NewRenderError(pageURL, "page load timed out", err)
	}

	height, err := c.measureFullHeight(p)
	if err != nil {
		return nil, common.NewRenderError(pageURL, "failed to measure page height", err)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             c.cfg.ViewportWidth,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, common.NewRenderError(pageURL, "failed to set viewport", err)
	}

	// Scroll to the bottom so lazy-loaded content renders, then give it a
	// moment to settle.
	if _, err := p.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		c.logger.Warn().Err(err).Str("url", pageURL).Msg("Scroll to bottom failed")
	}
	if c.cfg.SettleDelayMs > 0 {
		select {
		case <-time.After(time.Duration(c.cfg.SettleDelayMs) * time.Millisecond):
		case <-navCtx.Done():
			return nil, common.NewRenderError(pageURL, "timed out while settling", navCtx.Err())
		}
	}

	buf, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, common.NewRenderError(pageURL, "screenshot failed", err)
	}

	c.logger.Debug().
		Str("url", pageURL).
		Int("height", height).
		Int("bytes", len(buf)).
		Msg("Captured full-page screenshot")
	return buf, nil
}

func (c *Capturer) measureFullHeight(p *rod.Page) (int, error) {
	res, err := p.Eval(`() => Math.max(
		document.documentElement.scrollHeight,
		document.body.scrollHeight,
		document.documentElement.clientHeight
	)`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}
