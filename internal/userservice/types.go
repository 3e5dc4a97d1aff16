package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sutanlim/blogify/internal/common"
)

const (
	// TokenTime is the lifetime of an issued access token.
	TokenTime time.Duration = time.Hour

	bcryptCost = 12
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	secret []byte
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// SignedUpEvent is the message published to the user exchange after a signup.
type SignedUpEvent struct {
	Email     string
	FirstName string
}
