package store

import "newsroomai/pkg/domain"

// Store defines persistence operations for articles and users.
// Updates are last-write-wins; there is no versioning or soft delete.
type Store interface {
	// articles
	CreateArticle(a domain.Article) (domain.Article, error)
	GetArticle(id uint) (domain.Article, bool, error)
	ListArticles() ([]domain.Article, error)
	UpdateArticle(a domain.Article) error
	DeleteArticle(id uint) error

	// users
	CreateUser(u domain.User) (domain.User, error)
	GetUserByID(id uint) (domain.User, bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByUsername(username string) (domain.User, bool, error)
	UpdateUser(u domain.User) error
}
