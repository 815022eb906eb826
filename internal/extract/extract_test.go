package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Harbor Expansion Approved</title>
	<meta property="og:title" content="Harbor Expansion Approved After Review">
</head>
<body>
	<nav>Home | News | Sports</nav>
	<article>
		<h1>Harbor Expansion Approved After Review</h1>
		<p>The port authority approved the harbor expansion on Monday following a two-year environmental review.</p>
		<p>Construction is expected to begin next spring and take three years to complete.</p>
		<p>Local fishing groups said they would monitor dredging operations closely.</p>
	</article>
	<footer>Copyright notice</footer>
	<script>trackPageView();</script>
</body>
</html>`

func TestFetchFromLinkExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	title, text, err := NewFetcher().FetchFromLink(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if title == "" {
		t.Fatal("title missing")
	}
	if !strings.Contains(text, "port authority approved the harbor expansion") {
		t.Fatalf("article body missing from extracted text: %q", text)
	}
	if strings.Contains(text, "trackPageView") || strings.Contains(text, "Home | News | Sports") {
		t.Fatalf("boilerplate leaked into extracted text: %q", text)
	}
}

func TestFetchFromLinkEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>t</title></head><body>   </body></html>`))
	}))
	defer srv.Close()

	_, _, err := NewFetcher().FetchFromLink(context.Background(), srv.URL)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("got %v, want ErrExtractionFailed", err)
	}
}

func TestFetchFromLinkHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, err := NewFetcher().FetchFromLink(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 page")
	}
}

func TestParagraphFallback(t *testing.T) {
	html := `<html><head><title>Fallback Title</title></head><body>
		<p>First paragraph of the story.</p>
		<p>Second paragraph with more detail.</p>
		<script>ignored()</script>
	</body></html>`

	title, text, err := extractParagraphs([]byte(html))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if title != "Fallback Title" {
		t.Fatalf("title = %q", title)
	}
	if !strings.Contains(text, "First paragraph of the story.") ||
		!strings.Contains(text, "Second paragraph with more detail.") {
		t.Fatalf("text = %q", text)
	}
	if strings.Contains(text, "ignored()") {
		t.Fatal("script content leaked")
	}
}
