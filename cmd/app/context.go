package main

import (
	"context"
	"net/http"

	"github.com/sutanlim/blogify/internal/userservice"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) createUserContext(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok {
		return nil
	}
	return user
}

// viewerID returns the id of the authenticated caller, or nil when the request
// carries no identity.
func (app *application) viewerID(r *http.Request) *int64 {
	user := app.getUserContext(r)
	if user == nil || user.IsAnonymous() {
		return nil
	}
	return &user.ID
}
