package handler

import (
	"net/http"

	"student-records-api/common"
	"student-records-api/render"
)

// ErrorHandlingMiddleware adapts AppError-returning handlers to http.Handler.
// Errors render through the same negotiator as success payloads, so every
// error is available as JSON, XML, or an HTML page.
func ErrorHandlingMiddleware(n *render.Negotiator, next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appErr := next(w, r); appErr != nil {
			appErr.Log()
			n.Error(w, render.ResolveFormat(r), appErr.Code, appErr.Message)
		}
	}
}
