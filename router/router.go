package router

import (
	"net/http"

	"student-records-api/common"
	"student-records-api/handler"
	"student-records-api/render"

	_ "student-records-api/docs" // swagger spec registration

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(authHandler *handler.AuthHandler, studentHandler *handler.StudentHandler, authMW *handler.AuthMiddleware, n *render.Negotiator) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/students", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /register", authHandler.RegisterPage)
	mux.Handle("POST /register", handler.ErrorHandlingMiddleware(n, authHandler.Register))
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.Handle("POST /login", handler.ErrorHandlingMiddleware(n, authHandler.Login))
	mux.HandleFunc("GET /logout", authHandler.Logout)

	// Every record-reading or record-mutating route goes through the gate.
	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return authMW.Require(handler.ErrorHandlingMiddleware(n, h))
	}

	mux.Handle("GET /students", protected(studentHandler.List))
	mux.Handle("POST /students", protected(studentHandler.Create))
	mux.Handle("GET /students/new", protected(studentHandler.NewForm))
	mux.Handle("GET /students/{id}", protected(studentHandler.Get))
	mux.Handle("GET /students/{id}/edit", protected(studentHandler.EditForm))
	mux.Handle("PUT /students/{id}", protected(studentHandler.Update))
	mux.Handle("POST /students/{id}", protected(studentHandler.Update))
	mux.Handle("DELETE /students/{id}", protected(studentHandler.Delete))
	mux.Handle("POST /students/{id}/delete", protected(studentHandler.DeleteForm))

	return handler.MetricsMiddleware(mux)
}
