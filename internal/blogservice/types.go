package blogservice

import (
	"database/sql"
	"time"
)

type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

type Author struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Blog struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Body is stored verbatim; ReadingTime is derived from it.
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	Author      Author    `json:"author"`
	State       State     `json:"state"`
	ReadCount   int       `json:"read_count"`
	ReadingTime int       `json:"reading_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}

// ListFilters carries the list-endpoint parameters. Zero values mean "not supplied".
type ListFilters struct {
	State  string
	Search string
	Author string
	SortBy string
	Order  string
	Page   int
	Limit  int
}

type BlogList struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Items []Blog `json:"items"`
}
