// Package snapshot captures rendered HTML pages as PNG images with a headless Chrome.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type Config struct {
	Width   int64
	Height  int64
	Timeout time.Duration
	// Settle is how long to wait after load for chart animations to finish.
	Settle time.Duration
}

// FileURL turns a local path into a file:// URL chrome can navigate to.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// Capture loads pageURL and returns a PNG of the full page.
func Capture(ctx context.Context, logger *slog.Logger, pageURL string, cfg Config) ([]byte, error) {
	startTime := time.Now()

	// Ensure any long running Chrome tasks are cancelled when we exit
	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, cfg.Timeout)
	defer timeoutCancel()

	chromeCtx, cancel := chromedp.NewContext(timeoutCtx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(chromeCtx,
		emulation.SetDeviceMetricsOverride(cfg.Width, cfg.Height, 1, false),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(cfg.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", pageURL, err)
	}

	logger.Debug("Captured page",
		"url", pageURL,
		"pngBytes", len(buf),
		"durationMs", time.Since(startTime).Milliseconds(),
	)

	return buf, nil
}
