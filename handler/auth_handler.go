package handler

import (
	"net/http"
	"strings"

	"student-records-api/common"
	"student-records-api/model"
	"student-records-api/render"
	"student-records-api/service"
)

// AuthHandler serves registration, login and logout for both API clients
// (JSON bodies, token in the response) and browsers (form posts, token
// parked in a server-side session).
type AuthHandler struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	negotiator *render.Negotiator
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, negotiator *render.Negotiator) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, negotiator: negotiator}
}

func isFormRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.negotiator.HTML(w, http.StatusOK, "register.html", render.AuthPage{})
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.negotiator.HTML(w, http.StatusOK, "login.html", render.AuthPage{})
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account. The password is stored only as a bcrypt hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.RegisterRequest true "Username and password"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string "Missing or malformed fields"
// @Failure      409  {object}  map[string]string "Username already exists"
// @Router       /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	if isFormRequest(r) {
		h.registerForm(w, r)
		return nil
	}

	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if _, err := h.auth.Register(r.Context(), req.Username, req.Password); err != nil {
		switch err {
		case service.ErrMissingFields:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrDuplicateUsername:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Registration failed", err)
		}
	}

	h.negotiator.Message(w, render.ResolveFormat(r), http.StatusCreated, "User registered!")
	return nil
}

func (h *AuthHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.negotiator.HTML(w, http.StatusBadRequest, "register.html", render.AuthPage{Error: "Invalid form data"})
		return
	}

	_, err := h.auth.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	switch err {
	case nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case service.ErrMissingFields:
		h.negotiator.HTML(w, http.StatusBadRequest, "register.html", render.AuthPage{Error: err.Error()})
	case service.ErrDuplicateUsername:
		h.negotiator.HTML(w, http.StatusConflict, "register.html", render.AuthPage{Error: err.Error()})
	default:
		h.negotiator.HTML(w, http.StatusInternalServerError, "register.html", render.AuthPage{Error: "Registration failed"})
	}
}

// Login godoc
// @Summary      Authenticate and obtain a token
// @Description  Verifies credentials and returns a signed token valid for 24 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Username and password"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string "Missing fields"
// @Failure      401  {object}  map[string]string "Invalid credentials"
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	if isFormRequest(r) {
		h.loginForm(w, r)
		return nil
	}

	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	token, appErr := h.authenticate(r, req.Username, req.Password)
	if appErr != nil {
		return appErr
	}

	h.negotiator.Token(w, render.ResolveFormat(r), http.StatusOK, token)
	return nil
}

func (h *AuthHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.negotiator.HTML(w, http.StatusBadRequest, "login.html", render.AuthPage{Error: "Invalid form data"})
		return
	}

	token, appErr := h.authenticate(r, r.PostFormValue("username"), r.PostFormValue("password"))
	if appErr != nil {
		h.negotiator.HTML(w, appErr.Code, "login.html", render.AuthPage{Error: appErr.Message})
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), token)
	if err != nil {
		h.negotiator.HTML(w, http.StatusInternalServerError, "login.html", render.AuthPage{Error: "Could not create session"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.TokenTTL.Seconds()),
	})
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

func (h *AuthHandler) authenticate(r *http.Request, username, password string) (string, *common.AppError) {
	subject, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		switch err {
		case service.ErrMissingFields:
			return "", common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrInvalidCredentials:
			return "", common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		default:
			return "", common.NewAppError(http.StatusInternalServerError, "Login failed", err)
		}
	}

	token, err := h.auth.IssueToken(subject)
	if err != nil {
		return "", common.NewAppError(http.StatusInternalServerError, "Login failed", err)
	}
	return token, nil
}

// Logout destroys the browser session, if any, and clears the cookie.
// Bearer tokens cannot be revoked; they die at their natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    "",
				Path:     "/",
				HttpOnly: true,
				MaxAge:   -1,
			})
		}
	}

	f := render.ResolveFormat(r)
	if f == render.FormatHTML {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.negotiator.Message(w, f, http.StatusOK, "Logged out!")
}
