// Package fetch - browser.go provides headless browser rendering for
// JavaScript-heavy article pages.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinArticleLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content usually means a client-rendered
// page that needs the browser fallback.
const MinArticleLength = 200

// ShouldUseBrowser reports whether the extracted text is too short and the
// page should be re-fetched through a headless browser.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinArticleLength
}

// ArticleWithBrowser renders a page in a headless browser and extracts the
// article text from the rendered HTML. Requires Chrome/Chromium on the host.
func ArticleWithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in content.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	text, err := ExtractArticleText(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract article text", Cause: err}
	}
	return &Result{URL: urlStr, HTML: html, Text: text, StatusCode: 200, ContentType: "text/html"}, nil
}

// SourceText fetches a URL and returns article text, automatically falling
// back to the headless browser when the static HTML looks client-rendered.
func SourceText(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	if useBrowser {
		result, err := ArticleWithBrowser(ctx, urlStr, DefaultTimeout)
		if err != nil {
			return "", err
		}
		return result.Text, nil
	}

	result, err := Article(ctx, urlStr, nil)
	if err != nil {
		return "", err
	}
	if ShouldUseBrowser(result.Text) {
		rendered, berr := ArticleWithBrowser(ctx, urlStr, DefaultTimeout)
		if berr == nil {
			return rendered.Text, nil
		}
		// Fall through with whatever the static fetch produced.
	}
	if strings.TrimSpace(result.Text) == "" {
		return "", fmt.Errorf("no article text found at %s", urlStr)
	}
	return result.Text, nil
}
