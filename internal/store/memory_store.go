package store

import (
	"sort"
	"sync"

	"newsroomai/pkg/domain"
)

// MemoryStore keeps records in-process. It backs tests so application logic
// can run without Postgres.
type MemoryStore struct {
	mu            sync.RWMutex
	articles      map[uint]domain.Article
	users         map[uint]domain.User
	nextArticleID uint
	nextUserID    uint
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles:      make(map[uint]domain.Article),
		users:         make(map[uint]domain.User),
		nextArticleID: 1,
		nextUserID:    1,
	}
}

// CreateArticle stores an article and assigns the next ID.
func (m *MemoryStore) CreateArticle(a domain.Article) (domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextArticleID
	m.nextArticleID++
	m.articles[a.ID] = copyArticle(a)
	return a, nil
}

// GetArticle retrieves an article by ID.
func (m *MemoryStore) GetArticle(id uint) (domain.Article, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.articles[id]
	if !ok {
		return domain.Article{}, false, nil
	}
	return copyArticle(a), true, nil
}

// ListArticles returns all articles, newest first.
func (m *MemoryStore) ListArticles() ([]domain.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Article, 0, len(m.articles))
	for _, a := range m.articles {
		res = append(res, copyArticle(a))
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// UpdateArticle replaces a stored article. Last write wins.
func (m *MemoryStore) UpdateArticle(a domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[a.ID] = copyArticle(a)
	return nil
}

// DeleteArticle removes an article by ID.
func (m *MemoryStore) DeleteArticle(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.articles, id)
	return nil
}

// CreateUser stores a user and assigns the next ID.
func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextUserID
	m.nextUserID++
	m.users[u.ID] = u
	return u, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id uint) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Email == email })
}

// GetUserByUsername looks up a user by username.
func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Username == username })
}

func (m *MemoryStore) findUser(match func(domain.User) bool) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// UpdateUser replaces a stored user.
func (m *MemoryStore) UpdateUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func copyArticle(a domain.Article) domain.Article {
	if a.Perspectives != nil {
		a.Perspectives = append([]string(nil), a.Perspectives...)
	}
	switch deep := a.DeepAnalysis.(type) {
	case map[string]any:
		cp := make(map[string]any, len(deep))
		for k, v := range deep {
			cp[k] = v
		}
		a.DeepAnalysis = cp
	case []any:
		a.DeepAnalysis = append([]any(nil), deep...)
	}
	return a
}
