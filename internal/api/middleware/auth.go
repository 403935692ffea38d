package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/domain"
)

const (
	msgMissingToken = "требуется заголовок Authorization: Bearer <token>"
	msgInvalidToken = "недействительный токен"
)

var ErrInvalidClaims = errors.New("token has no user id")

type identityKey struct{}

// Claims полезная нагрузка токена доступа.
// Токены выпускает сервис аутентификации, здесь они только проверяются.
type Claims struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

// WithIdentity кладет аутентифицированного пользователя в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity достает аутентифицированного пользователя из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}

// Auth проверяет HS256 токен из заголовка Authorization и кладет
// domain.Identity в контекст запроса
func Auth(secret, issuer string, logger Logger) mux.MiddlewareFunc {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				logger.Warn("Auth: missing bearer token for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := parseIdentity(parser, raw, secret)
			if err != nil {
				logger.Warn("Auth: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// IssueToken подписывает токен для пользователя. Используется в тестах и локальной разработке.
func IssueToken(secret string, claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseIdentity(parser *jwt.Parser, raw, secret string) (domain.Identity, error) {
	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.UserID <= 0 {
		return domain.Identity{}, ErrInvalidClaims
	}

	return domain.Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}
