package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsroomai/internal/analysis"
	"newsroomai/internal/app"
	"newsroomai/internal/auth"
	"newsroomai/internal/store"
	"newsroomai/pkg/ai"
	"newsroomai/pkg/domain"
)

const goodAnalysisJSON = `{
	"bias_score": 55,
	"bias_label": "Moderate",
	"summary": "A summary of the council vote.",
	"perspectives": ["Supporters welcomed it.", "Critics objected."],
	"explanation": "Mildly loaded framing.",
	"deep_analysis": null
}`

type stubGenerator struct {
	analyzeResponse string
	rewriteResponse string
}

func (g *stubGenerator) GenerateText(_ context.Context, systemPrompt, _ string, _ ai.Options) (string, error) {
	if strings.Contains(systemPrompt, "neutral news editor") {
		return g.rewriteResponse, nil
	}
	return g.analyzeResponse, nil
}

func newTestServer(t *testing.T, gen ai.TextGenerator) *httptest.Server {
	t.Helper()
	a, err := app.New(app.Config{
		Store:    store.NewMemoryStore(),
		Analyzer: analysis.NewAnalyzer(gen),
		Rewriter: analysis.NewRewriter(gen),
		Tokens:   auth.NewTokenManager("server-test-secret", 0),
		DevMode:  true,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: a}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func registerAndLogin(t *testing.T, baseURL string) string {
	t.Helper()
	resp := postJSON(t, baseURL+"/auth/register", map[string]string{
		"username": "erin",
		"email":    "erin@example.com",
		"password": "pw123456",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, baseURL+"/auth/login", map[string]string{
		"email":    "erin@example.com",
		"password": "pw123456",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var body struct {
		AccessToken string `json:"access_token"`
		Email       string `json:"email"`
	}
	decodeBody(t, resp, &body)
	if body.AccessToken == "" || body.Email != "erin@example.com" {
		t.Fatalf("login body = %+v", body)
	}
	return body.AccessToken
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-Id"); got == "" {
		t.Fatal("X-Request-Id header missing")
	}
}

func TestAuthRoundTrip(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	token := registerAndLogin(t, srv.URL)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	var me struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	decodeBody(t, resp, &me)
	if me.Username != "erin" || me.Email != "erin@example.com" || me.Role != string(domain.RoleUser) {
		t.Fatalf("me body = %+v", me)
	}
}

func TestMeRejectsMissingAndTamperedTokens(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	token := registerAndLogin(t, srv.URL)

	resp, err := http.Get(srv.URL + "/auth/me")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token[:len(token)-2]+"xx")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("tampered token: status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterConflict(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	registerAndLogin(t, srv.URL)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"username": "erin2",
		"email":    "erin@example.com",
		"password": "pw123456",
	}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: status = %d, want 409", resp.StatusCode)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: goodAnalysisJSON})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{
		"text": "Parliament passed the budget bill late on Tuesday night after weeks of negotiation.",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var article domain.Article
	decodeBody(t, resp, &article)
	if article.ID == 0 {
		t.Fatal("article id not assigned")
	}
	if article.BiasScore != 55 || article.BiasLabel != domain.BiasModerate {
		t.Fatalf("article = %+v", article)
	}
	if article.Title != "Parliament passed the budget bill late on Tuesday" {
		t.Fatalf("title = %q", article.Title)
	}
	if article.AuthorID != 1 {
		t.Fatalf("anonymous author_id = %d, want 1", article.AuthorID)
	}
}

func TestAnalyzeSetsAuthorFromToken(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: goodAnalysisJSON})

	// First account takes id 1, which collides with the anonymous default,
	// so the caller under test is the second account.
	registerAndLogin(t, srv.URL)
	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"username": "frank",
		"email":    "frank@example.com",
		"password": "pw123456",
	}, "")
	resp.Body.Close()
	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "frank@example.com",
		"password": "pw123456",
	}, "")
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &login)

	resp = postJSON(t, srv.URL+"/analyze", map[string]string{
		"text": "Some article text to analyze.",
	}, login.AccessToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var article domain.Article
	decodeBody(t, resp, &article)
	if article.AuthorID != 2 {
		t.Fatalf("author_id = %d, want the caller's id 2", article.AuthorID)
	}
}

func TestAnalyzeEmptyBodyIsBadRequest(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: goodAnalysisJSON})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{"text": "   "}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeKeepsNonObjectDeepAnalysis(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: `{
		"bias_score": 12, "bias_label": "Low", "summary": "s",
		"perspectives": ["a", "b"], "deep_analysis": "not applicable"
	}`})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{"text": "Some article."}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for non-object deep_analysis", resp.StatusCode)
	}
	var article domain.Article
	decodeBody(t, resp, &article)
	if article.DeepAnalysis != "not applicable" {
		t.Fatalf("deep_analysis = %v, want the model's value carried through", article.DeepAnalysis)
	}
}

func TestAnalyzeMalformedModelOutputIsBadGateway(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: "the model rambled with no json at all"})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{"text": "Some article."}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
}

func TestArticleLifecycle(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{
		analyzeResponse: goodAnalysisJSON,
		rewriteResponse: "A neutral account of the vote.",
	})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{"text": "The outrageous budget vote."}, "")
	var article domain.Article
	decodeBody(t, resp, &article)

	// rewrite
	resp = postJSON(t, srv.URL+"/rewrite", map[string]any{
		"article_id": article.ID,
		"text":       article.Content,
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rewrite status = %d", resp.StatusCode)
	}
	var rew struct {
		RewrittenText string `json:"rewritten_text"`
	}
	decodeBody(t, resp, &rew)
	if rew.RewrittenText != "A neutral account of the vote." {
		t.Fatalf("rewritten_text = %q", rew.RewrittenText)
	}

	// list
	resp, err := http.Get(srv.URL + "/articles")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var articles []domain.Article
	decodeBody(t, resp, &articles)
	if len(articles) != 1 || articles[0].RewrittenText != rew.RewrittenText {
		t.Fatalf("articles = %+v", articles)
	}

	// update
	body, _ := json.Marshal(map[string]string{"text": "Corrected text."})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/articles/1", bytes.NewReader(body))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	var updated domain.Article
	decodeBody(t, resp, &updated)
	if updated.Content != "Corrected text." || updated.UpdatedAt == nil {
		t.Fatalf("updated = %+v", updated)
	}

	// delete, then 404
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/articles/1", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, err = http.Get(srv.URL + "/articles/1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestDownloadPDF(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{analyzeResponse: goodAnalysisJSON})

	resp := postJSON(t, srv.URL+"/analyze", map[string]string{"text": "The budget vote passed."}, "")
	var article domain.Article
	decodeBody(t, resp, &article)

	resp, err := http.Get(srv.URL + "/articles/1/download_pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	buf := make([]byte, 5)
	if _, err := resp.Body.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf) != "%PDF-" {
		t.Fatalf("body does not start with a PDF header: %q", buf)
	}
}

func TestPasswordResetEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	registerAndLogin(t, srv.URL)

	resp := postJSON(t, srv.URL+"/auth/forgot-password", map[string]string{"email": "erin@example.com"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot status = %d", resp.StatusCode)
	}
	var forgot struct {
		ResetToken string `json:"reset_token"`
	}
	decodeBody(t, resp, &forgot)
	if forgot.ResetToken == "" {
		t.Fatal("reset_token missing")
	}

	resp = postJSON(t, srv.URL+"/auth/reset-password", map[string]string{
		"token":        forgot.ResetToken,
		"new_password": "fresh-pass",
	}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "erin@example.com",
		"password": "fresh-pass",
	}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login after reset: status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/auth/forgot-password", map[string]string{"email": "nobody@example.com"}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown email: status = %d, want 404", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/analyze")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func TestInvalidArticleID(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/articles/not-a-number")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
