package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"newsroomai/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&ArticleModel{}, &UserModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateArticle inserts an article and returns it with the generated ID.
func (s *GormStore) CreateArticle(a domain.Article) (domain.Article, error) {
	model, err := articleToModel(a)
	if err != nil {
		return domain.Article{}, err
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Article{}, err
	}
	return articleFromModel(model)
}

// GetArticle retrieves an article by ID.
func (s *GormStore) GetArticle(id uint) (domain.Article, bool, error) {
	var model ArticleModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Article{}, false, nil
		}
		return domain.Article{}, false, err
	}
	article, err := articleFromModel(model)
	if err != nil {
		return domain.Article{}, false, err
	}
	return article, true, nil
}

// ListArticles returns all articles ordered by creation time, newest first.
func (s *GormStore) ListArticles() ([]domain.Article, error) {
	var models []ArticleModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Article, 0, len(models))
	for _, m := range models {
		article, err := articleFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, article)
	}
	return res, nil
}

// UpdateArticle persists the full article record. Last write wins.
func (s *GormStore) UpdateArticle(a domain.Article) error {
	model, err := articleToModel(a)
	if err != nil {
		return err
	}
	return s.db.Save(&model).Error
}

// DeleteArticle removes an article by ID.
func (s *GormStore) DeleteArticle(id uint) error {
	return s.db.Delete(&ArticleModel{}, "id = ?", id).Error
}

// CreateUser inserts a user and returns it with the generated ID.
func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	return s.getUser("id = ?", id)
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	return s.getUser("email = ?", email)
}

// GetUserByUsername looks up a user by username.
func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	return s.getUser("username = ?", username)
}

func (s *GormStore) getUser(cond string, arg any) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// UpdateUser persists the full user record.
func (s *GormStore) UpdateUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Save(&model).Error
}
