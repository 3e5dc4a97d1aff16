package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sutanlim/blogify/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, secret string, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		secret: []byte(secret),
		logger: logger,
	}
}

// CreateUser registers a new account and publishes a user.signed_up event. The event
// publish is best effort: a broker failure is logged, not surfaced to the caller.
func (s *UserService) CreateUser(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	v := common.NewValidator()
	validateName(v, firstName, "first_name")
	validateName(v, lastName, "last_name")
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	event, err := json.Marshal(SignedUpEvent{Email: u.Email, FirstName: u.FirstName})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, event, common.UserSignedUpKey, common.UserExchange)
	if err != nil {
		s.logger.Error("could not publish signed up event", slog.String("email", u.Email), slog.String("error", err.Error()))
	}

	return &u, nil
}

// AuthenticateUser verifies the credentials and issues a signed token. An unknown email
// and a wrong password both map to ErrAuthenticationFailure so callers cannot tell the
// two apart.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return "", ErrAuthenticationFailure
		default:
			return "", err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", ErrAuthenticationFailure
	}

	return issueToken(s.secret, user.ID, user.Email)
}

// GetUserForToken resolves a bearer token to the user it was issued for. The token must
// verify and its subject must still exist.
func (s *UserService) GetUserForToken(ctx context.Context, token string) (*User, error) {
	userID, _, err := verifyToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	return s.m.getUserByID(ctx, userID)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
