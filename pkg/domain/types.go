package domain

import "time"

type UserRole string

const (
	RoleUser UserRole = "user"
)

// BiasLabel is the qualitative judgment accompanying the numeric bias score.
type BiasLabel string

const (
	BiasLow      BiasLabel = "Low"
	BiasModerate BiasLabel = "Moderate"
	BiasHigh     BiasLabel = "High"
)

// Article is a stored news article together with its bias analysis.
// RewrittenText stays empty until a neutral rewrite has been performed.
type Article struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	BiasScore     int       `json:"bias_score"`
	BiasLabel     BiasLabel `json:"bias_label"`
	Summary       string    `json:"summary"`
	Explanation   string    `json:"explanation"`
	Perspectives  []string  `json:"perspectives"`
	DeepAnalysis  any       `json:"deep_analysis,omitempty"`
	RewrittenText string         `json:"rewritten_text,omitempty"`
	AuthorID      uint           `json:"author_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

type User struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	Role           UserRole   `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
	ResetToken     string     `json:"-"`
	ResetTokenExp  *time.Time `json:"-"`
}

// Analysis is the normalized result of one model call on an article.
// DeepAnalysis carries whatever JSON value the model produced, nil when the
// model declined to produce one.
type Analysis struct {
	BiasScore    int       `json:"bias_score"`
	BiasLabel    BiasLabel `json:"bias_label"`
	Summary      string    `json:"summary"`
	Perspectives []string  `json:"perspectives"`
	Explanation  string    `json:"explanation"`
	DeepAnalysis any       `json:"deep_analysis,omitempty"`
}
