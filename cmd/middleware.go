package main

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// jwtMiddleware authenticates the request with the Bearer access token. An expired
// access token is transparently refreshed from the Refresh-Token header when a valid
// session exists; the new access token is returned in the Authorization response
// header.
func (app *application) jwtMiddleware(next http.Handler, staffOnly bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)
		if accessToken == "" {
			if cookie, err := r.Cookie("access_token"); err == nil {
				accessToken = cookie.Value
			}
		}
		if accessToken == "" {
			http.Error(w, "Authorization header missing or invalid", http.StatusUnauthorized)
			return
		}

		var userID int
		var isStaff bool

		claims, err := app.tokenManager.ParseClaims(accessToken)
		if err == nil {
			userID = claims.UserID
			isStaff = claims.IsStaff
		} else {
			refreshToken := r.Header.Get("Refresh-Token")
			if refreshToken == "" {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			session, err := app.userRepo.GetSessionByToken(r.Context(), refreshToken)
			if err != nil {
				http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
				return
			}
			if session.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Expired refresh token", http.StatusUnauthorized)
				return
			}

			user, err := app.userRepo.GetUserByID(r.Context(), session.UserID)
			if err != nil {
				http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
				return
			}

			newAccessToken, err := app.tokenManager.NewAccessToken(user.ID, user.IsStaff, accessTokenTTL(app))
			if err != nil {
				http.Error(w, "Error generating new access token", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Authorization", "Bearer "+newAccessToken)

			userID = user.ID
			isStaff = user.IsStaff
		}

		if staffOnly && !isStaff {
			http.Error(w, "Forbidden: staff only", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), "user_id", userID)
		ctx = context.WithValue(ctx, "is_staff", isStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

func accessTokenTTL(app *application) time.Duration {
	ttl := time.Duration(app.cfg.Auth.AccessTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return ttl
}
