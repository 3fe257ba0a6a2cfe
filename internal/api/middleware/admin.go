package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth пропускает только запросы с верным X-Admin-Token.
// Пустой token закрывает админские ручки целиком.
func AdminAuth(token string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("%s %s - Unauthorized admin request from %s", r.Method, r.URL.Path, ClientIP(r))
				handlers.RespondUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
