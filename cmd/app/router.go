package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (app *application) routes() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowedHandler = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandleFunc("/v1/healthcheck", app.healthCheckHandler).Methods(http.MethodGet)

	// auth
	router.HandleFunc("/api/auth/signup", app.signupUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/signin", app.signinUserHandler).Methods(http.MethodPost)

	// blogs
	router.HandleFunc("/api/blogs", app.listBlogsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/blogs", app.requireAuth(app.createBlogHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/blogs/me/list", app.requireAuth(app.listOwnBlogsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/blogs/{id:[0-9]+}", app.getBlogHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/blogs/{id:[0-9]+}", app.requireAuth(app.updateBlogHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/blogs/{id:[0-9]+}", app.requireAuth(app.deleteBlogHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/blogs/{id:[0-9]+}/publish", app.requireAuth(app.publishBlogHandler)).Methods(http.MethodPost)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
