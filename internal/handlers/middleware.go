package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"screenguess/internal/credentials"
	"screenguess/internal/models"
	"screenguess/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens       *security.TokenIssuer
	limiter      *security.RateLimiter
	adminKeyHash string
	logger       *zap.Logger
}

// NewMiddleware creates a new middleware instance. limiter may be nil to
// disable rate limiting.
func NewMiddleware(tokens *security.TokenIssuer, limiter *security.RateLimiter, adminKeyHash string, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		tokens:       tokens,
		limiter:      limiter,
		adminKeyHash: adminKeyHash,
		logger:       logger,
	}
}

// Player identifies the caller from a bearer token or the player cookie. A
// caller without a valid token is given a new anonymous identity.
func (m *Middleware) Player(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, err := m.tokens.Validate(playerToken(r)); err == nil {
			player := models.Player{ID: claims.PlayerID, Nickname: claims.Nickname}
			next(w, r.WithContext(context.WithValue(r.Context(), PlayerContextKey, player)))
			return
		}

		nickname, err := credentials.GenerateNickname()
		if err != nil {
			respondWithError(w, m.logger, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate nickname", err)
			return
		}
		player := models.Player{ID: security.GeneratePlayerID(), Nickname: nickname}

		token, err := m.tokens.Issue(player.ID, player.Nickname)
		if err != nil {
			respondWithError(w, m.logger, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue player token", err)
			return
		}
		http.SetCookie(w, security.CreatePlayerCookie(r, token, time.Now().Add(m.tokens.TTL())))
		w.Header().Set(PlayerTokenHeader, token)

		m.logger.Debug("Issued new player identity", zap.String("player_id", player.ID))
		next(w, r.WithContext(context.WithValue(r.Context(), PlayerContextKey, player)))
	}
}

// RequireAdmin rejects requests without the operator key
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(AdminKeyHeader)
		if m.adminKeyHash == "" || key == "" || !security.CheckAdminKey(m.adminKeyHash, key) {
			m.logger.Warn("Rejected admin request", zap.String("path", r.URL.Path), zap.String("ip", security.GetClientIP(r)))
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
			return
		}
		next(w, r)
	}
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.GetClientIP(r)) {
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: ErrTooManyRequests})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// GetPlayerFromContext retrieves the player from the request context
func GetPlayerFromContext(ctx context.Context) (models.Player, bool) {
	player, ok := ctx.Value(PlayerContextKey).(models.Player)
	return player, ok
}

func playerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(security.PlayerCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
