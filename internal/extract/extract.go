package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ErrExtractionFailed indicates the page yielded no usable article text.
var ErrExtractionFailed = errors.New("failed to extract article text")

const maxBodyBytes = 8 << 20

// Fetcher downloads a page and extracts its main article content.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchFromLink downloads articleURL and returns the article title and text.
// Readability extraction is tried first; a goquery paragraph scrape is the
// fallback for pages readability cannot handle.
func (f *Fetcher) FetchFromLink(ctx context.Context, articleURL string) (string, string, error) {
	parsedURL, err := url.Parse(articleURL)
	if err != nil {
		return "", "", fmt.Errorf("parse article url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) newsroomai/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("fetch article: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("read article body: %w", err)
	}

	title, text := extractReadable(body, parsedURL)
	if strings.TrimSpace(text) == "" {
		title, text, err = extractParagraphs(body)
		if err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", "", ErrExtractionFailed
	}
	return strings.TrimSpace(title), strings.TrimSpace(text), nil
}

func extractReadable(body []byte, pageURL *url.URL) (string, string) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", ""
	}
	return article.Title, article.TextContent
}

// extractParagraphs is the last-resort scrape: strip boilerplate nodes and
// join the remaining paragraph text.
func extractParagraphs(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, iframe, nav, footer").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		title = strings.TrimSpace(og)
	}

	var parts []string
	doc.Find("article p, p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return title, strings.Join(parts, "\n\n"), nil
}
