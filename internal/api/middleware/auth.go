package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-CancellationService/internal/api/handlers"
)

type staffIDKey struct{}

// Auth проверяет заголовок X-Staff-ID и кладет ID сотрудника в контекст
// Аутентификацию выполняет API-gateway, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Staff-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-Staff-ID")
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает ID сотрудника, положенный Auth middleware
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey{}).(int64)
	return staffID, ok
}
