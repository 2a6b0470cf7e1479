package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
)

// Recoverer turns a panic into a 500 and logs the stack.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			config.WithContext(r.Context()).
				WithField("panic", fmt.Sprint(rec)).
				WithField("stack", string(debug.Stack())).
				Error("Recovered from panic")

			config.WriteError(w, r, apperr.Internal(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
