package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"newsroomai/pkg/domain"
)

// GORM models used for persistence. Perspectives and DeepAnalysis are stored
// as JSON columns.

type ArticleModel struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"not null"`
	BiasScore     int    `gorm:"not null"`
	BiasLabel     string `gorm:"not null"`
	Summary       string
	Explanation   string
	Perspectives  datatypes.JSON
	DeepAnalysis  datatypes.JSON
	RewrittenText string
	AuthorID      uint       `gorm:"not null;index"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime:false"`
}

func (ArticleModel) TableName() string { return "articles" }

type UserModel struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:user"`
	CreatedAt      time.Time `gorm:"not null"`
	ResetToken     string    `gorm:"index"`
	ResetTokenExp  *time.Time
}

func (UserModel) TableName() string { return "users" }

func articleToModel(a domain.Article) (ArticleModel, error) {
	perspectives, err := json.Marshal(a.Perspectives)
	if err != nil {
		return ArticleModel{}, fmt.Errorf("encode perspectives: %w", err)
	}
	var deep datatypes.JSON
	if a.DeepAnalysis != nil {
		raw, err := json.Marshal(a.DeepAnalysis)
		if err != nil {
			return ArticleModel{}, fmt.Errorf("encode deep_analysis: %w", err)
		}
		deep = raw
	}
	return ArticleModel{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		BiasScore:     a.BiasScore,
		BiasLabel:     string(a.BiasLabel),
		Summary:       a.Summary,
		Explanation:   a.Explanation,
		Perspectives:  perspectives,
		DeepAnalysis:  deep,
		RewrittenText: a.RewrittenText,
		AuthorID:      a.AuthorID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}, nil
}

func articleFromModel(m ArticleModel) (domain.Article, error) {
	var perspectives []string
	if len(m.Perspectives) > 0 {
		if err := json.Unmarshal(m.Perspectives, &perspectives); err != nil {
			return domain.Article{}, fmt.Errorf("decode perspectives: %w", err)
		}
	}
	var deep any
	if len(m.DeepAnalysis) > 0 {
		if err := json.Unmarshal(m.DeepAnalysis, &deep); err != nil {
			return domain.Article{}, fmt.Errorf("decode deep_analysis: %w", err)
		}
	}
	return domain.Article{
		ID:            m.ID,
		Title:         m.Title,
		Content:       m.Content,
		BiasScore:     m.BiasScore,
		BiasLabel:     domain.BiasLabel(m.BiasLabel),
		Summary:       m.Summary,
		Explanation:   m.Explanation,
		Perspectives:  perspectives,
		DeepAnalysis:  deep,
		RewrittenText: m.RewrittenText,
		AuthorID:      m.AuthorID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Role:           string(u.Role),
		CreatedAt:      u.CreatedAt,
		ResetToken:     u.ResetToken,
		ResetTokenExp:  u.ResetTokenExp,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		Role:           domain.UserRole(m.Role),
		CreatedAt:      m.CreatedAt,
		ResetToken:     m.ResetToken,
		ResetTokenExp:  m.ResetTokenExp,
	}
}
