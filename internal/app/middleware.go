package app

import (
	"errors"
	"net/http"

	"github.com/budgetbite/budgetbite/internal/config"
	"github.com/budgetbite/budgetbite/internal/rest"
	"github.com/budgetbite/budgetbite/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.Use(recoverPanics)

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid != "" {
				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", uid)
						rest.WriteError(w, http.StatusForbidden, "user not found")
						return
					}
					log.Errorf("failed to get user: %v", err)
					rest.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
					return
				}
				log.Debugf("user found: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf("panic serving %s %s: %v", req.Method, req.URL.Path, rec)
				rest.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, req)
	})
}
