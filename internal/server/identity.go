package server

import (
	"context"
	"net/http"
)

// UserInfo is the resolved identity of the request: a tailnet login when
// Tailscale is enabled, otherwise the local dev user.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

var devUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// userIDFromContext returns the user ID set by identity middleware,
// defaulting to 1 so dev-mode requests never see a zero user.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// userInfoFromContext returns the identity set by middleware, or the dev
// fallback.
func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return devUser
}

// DevIdentity stamps every request with the local dev user. Used when
// Tailscale is disabled and by tests.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userIDKey, 1)
		ctx = context.WithValue(ctx, userInfoKey, devUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identity resolves the request's user. With a tsnet local client the peer
// is looked up via WhoIs and mapped to a users row; authentication itself
// happened on the tailnet, the engine only receives the resulting identity.
// Without Tailscale, requests run as the dev user.
func (s *Server) identity(next http.Handler) http.Handler {
	if s.lc == nil {
		return DevIdentity(next)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, err := s.lc.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil {
			s.log.Warn("whois failed", "remote", r.RemoteAddr, "error", err)
			http.Error(w, `{"error":"identity unavailable"}`, http.StatusForbidden)
			return
		}

		info := UserInfo{
			Login:       who.UserProfile.LoginName,
			DisplayName: who.UserProfile.DisplayName,
		}
		uid, err := s.db.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
		if err != nil {
			s.log.Error("resolving user", "login", info.Login, "error", err)
			http.Error(w, `{"error":"identity unavailable"}`, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		ctx = context.WithValue(ctx, userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}
