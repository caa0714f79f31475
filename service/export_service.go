package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ExportFormat is the output of a storefront export.
type ExportFormat string

const (
	ExportPDF ExportFormat = "pdf"
	ExportPNG ExportFormat = "png"
)

// ErrUnsupportedExportFormat is returned for formats other than pdf and png.
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// ParseExportFormat accepts "pdf" or "png" in any case.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportPDF, ExportPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportPNG {
		return "image/png"
	}
	return "application/pdf"
}

var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// DetectChromePath returns configured when it exists, then CHROME_PATH, then
// the first common install location found. Empty means let chromedp search.
func DetectChromePath(configured string) string {
	for _, path := range append([]string{configured, os.Getenv("CHROME_PATH")}, chromeCandidates...) {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ExportService turns rendered storefront HTML into PDF or PNG with headless Chrome.
type ExportService struct {
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewExportService creates an ExportService; chromePath may be empty.
func NewExportService(chromePath string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		chromePath: DetectChromePath(chromePath),
		timeout:    30 * time.Second,
		logger:     logger,
	}
}

// Export loads html into a blank tab and prints or screenshots it.
func (s *ExportService) Export(ctx context.Context, html string, format ExportFormat) ([]byte, error) {
	if _, err := ParseExportFormat(string(format)); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	s.logger.Info("🖨️  Exporting storefront", zap.String("format", string(format)),
		zap.String("chrome", s.chromePath))

	var out []byte
	capture := chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		out, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(8.27). // A4, inches
			WithPaperHeight(11.69).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	})
	var action chromedp.Action = capture
	if format == ExportPNG {
		action = chromedp.FullScreenshot(&out, 100)
	}

	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(1280, 900),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// inlined images decode asynchronously
		chromedp.Evaluate(`Promise.all(Array.from(document.images).map(img => img.decode().catch(() => null)))`, nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
		action,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", format, err)
	}

	s.logger.Info("✓ Storefront exported", zap.String("format", string(format)), zap.Int("bytes", len(out)))
	return out, nil
}
