package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pinya-planner/internal/domain"
)

// Auth validates an HS256 Bearer token and stores the operator identity
// in the request context. Requests without a valid token get 401.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
					return secret, nil
				}, jwt.WithValidMethods([]string{"HS256"}))

				if err == nil && token.Valid {
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if sub, ok := claims["sub"].(string); ok && sub != "" {
							isAdmin, _ := claims["admin"].(bool)
							ctx := domain.WithOperator(r.Context(), domain.ContextOperator{
								Nickname: sub,
								IsAdmin:  isAdmin,
							})
							next.ServeHTTP(w, r.WithContext(ctx))
							return
						}
					}
				}
			}

			writeAuthError(w, http.StatusUnauthorized, "unauthorized: provide a valid Bearer token")
		})
	}
}

// RequireAdmin rejects requests whose operator lacks the admin flag.
// It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op, ok := domain.OperatorFromContext(r.Context())
		if !ok || !op.IsAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
	})
}
