package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsroomai/internal/analysis"
	"newsroomai/internal/auth"
	"newsroomai/internal/store"
	"newsroomai/pkg/domain"
)

// defaultAuthorID is used for unauthenticated analyze/rewrite calls.
const defaultAuthorID = 1

// LinkFetcher extracts an article title and text from a URL.
type LinkFetcher interface {
	FetchFromLink(ctx context.Context, url string) (title, text string, err error)
}

// Config wires the application core's collaborators.
type Config struct {
	Store    store.Store
	Analyzer *analysis.Analyzer
	Rewriter *analysis.Rewriter
	Fetcher  LinkFetcher
	Tokens   *auth.TokenManager
	DevMode  bool
}

// App is the application core: analysis and rewrite orchestration, article
// CRUD, and the auth flows. Each method performs at most one model call and
// synchronous store operations; there are no background tasks.
type App struct {
	store    store.Store
	analyzer *analysis.Analyzer
	rewriter *analysis.Rewriter
	fetcher  LinkFetcher
	tokens   *auth.TokenManager
	devMode  bool
}

// New constructs the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg.Analyzer == nil || cfg.Rewriter == nil {
		return nil, fmt.Errorf("analyzer and rewriter required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token manager required")
	}
	return &App{
		store:    cfg.Store,
		analyzer: cfg.Analyzer,
		rewriter: cfg.Rewriter,
		fetcher:  cfg.Fetcher,
		tokens:   cfg.Tokens,
		devMode:  cfg.DevMode,
	}, nil
}

// Analyze runs the bias analysis on raw text or on content extracted from a
// link (link wins when both are given), stores the resulting article, and
// returns it. Model and extraction failures propagate unrecovered.
func (a *App) Analyze(ctx context.Context, text, link string, authorID uint) (domain.Article, error) {
	var title string
	if strings.TrimSpace(link) != "" {
		if a.fetcher == nil {
			return domain.Article{}, fmt.Errorf("link analysis not configured")
		}
		var err error
		title, text, err = a.fetcher.FetchFromLink(ctx, link)
		if err != nil {
			return domain.Article{}, err
		}
	} else {
		title = deriveTitle(text)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Article{}, ErrEmptyContent
	}

	result, err := a.analyzer.Analyze(ctx, text)
	if err != nil {
		return domain.Article{}, err
	}

	if authorID == 0 {
		authorID = defaultAuthorID
	}
	article := domain.Article{
		Title:        title,
		Content:      text,
		BiasScore:    result.BiasScore,
		BiasLabel:    result.BiasLabel,
		Summary:      result.Summary,
		Explanation:  result.Explanation,
		Perspectives: result.Perspectives,
		DeepAnalysis: result.DeepAnalysis,
		AuthorID:     authorID,
		CreatedAt:    time.Now().UTC(),
	}
	return a.store.CreateArticle(article)
}

// Rewrite produces a neutral rewrite of text and stores it on the article.
func (a *App) Rewrite(ctx context.Context, articleID uint, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	rewritten, err := a.rewriter.Rewrite(ctx, text)
	if err != nil {
		return "", err
	}

	article, ok, err := a.store.GetArticle(articleID)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	if !ok {
		return "", ErrArticleNotFound
	}
	now := time.Now().UTC()
	article.RewrittenText = rewritten
	article.UpdatedAt = &now
	if err := a.store.UpdateArticle(article); err != nil {
		return "", fmt.Errorf("update article: %w", err)
	}
	return rewritten, nil
}

// ListArticles returns all stored articles, newest first.
func (a *App) ListArticles() ([]domain.Article, error) {
	return a.store.ListArticles()
}

// GetArticle returns one article by ID.
func (a *App) GetArticle(id uint) (domain.Article, error) {
	article, ok, err := a.store.GetArticle(id)
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetch article: %w", err)
	}
	if !ok {
		return domain.Article{}, ErrArticleNotFound
	}
	return article, nil
}

// UpdateArticleContent replaces an article's content and stamps updated_at.
func (a *App) UpdateArticleContent(id uint, content string) (domain.Article, error) {
	article, ok, err := a.store.GetArticle(id)
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetch article: %w", err)
	}
	if !ok {
		return domain.Article{}, ErrArticleNotFound
	}
	now := time.Now().UTC()
	article.Content = content
	article.UpdatedAt = &now
	if err := a.store.UpdateArticle(article); err != nil {
		return domain.Article{}, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// DeleteArticle removes an article by ID.
func (a *App) DeleteArticle(id uint) error {
	_, ok, err := a.store.GetArticle(id)
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}
	if !ok {
		return ErrArticleNotFound
	}
	return a.store.DeleteArticle(id)
}

// Register creates a user with a unique username and email.
func (a *App) Register(username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("username, email and password required")
	}
	if _, ok, err := a.store.GetUserByEmail(email); err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	} else if ok {
		return domain.User{}, ErrEmailExists
	}
	if _, ok, err := a.store.GetUserByUsername(username); err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	} else if ok {
		return domain.User{}, ErrUsernameExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           domain.RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
	created, err := a.store.CreateUser(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues a signed bearer token with the
// user's email as subject.
func (a *App) Login(email, password string) (string, domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok || !auth.CheckPassword(password, user.HashedPassword) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, err := a.tokens.Issue(user.Email)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// UserFromToken resolves a bearer token to the user it references.
// A bad signature, a missing subject, or a vanished user all fail the same way.
func (a *App) UserFromToken(token string) (domain.User, error) {
	email, err := a.tokens.Verify(token)
	if err != nil {
		return domain.User{}, auth.ErrInvalidToken
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, auth.ErrInvalidToken
	}
	return user, nil
}

// ForgotPassword issues a short-lived reset token for the account.
//
// The token is returned directly to the caller, which is a known security
// gap (it should go out via email); the flow is therefore only enabled in
// dev mode.
func (a *App) ForgotPassword(email string) (string, error) {
	if !a.devMode {
		return "", ErrResetDisabled
	}
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return "", ErrUserNotFound
	}
	return a.tokens.IssueWithTTL(user.Email, auth.ResetTTL)
}

// ResetPassword redeems a reset token and stores a new password hash.
func (a *App) ResetPassword(token, newPassword string) error {
	email, err := a.tokens.Verify(token)
	if err != nil {
		return auth.ErrInvalidToken
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.HashedPassword = hash
	if err := a.store.UpdateUser(user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// deriveTitle takes the first eight words of the first line of raw text.
func deriveTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	words := strings.Fields(lines[0])
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}
