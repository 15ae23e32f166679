// Package apistub serves the first migrated API endpoints locally so the
// shell stays demoable before the new service exists. It is mounted only
// when no api upstream origin is configured; once one is, the proxy owns
// /api and none of this responds.
package apistub

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/server/handlertools"
)

var log = internal.GetLogger()

const ServiceName = "gatefig-apistub"

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type LoginResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type stubUser struct {
	ID       int64
	Name     string
	Password string
}

// Fixture accounts. Obviously fake; the stub never leaves dev.
var stubUsers = map[string]stubUser{
	"admin":    {ID: 1, Name: "Administrator", Password: "admin123"},
	"operator": {ID: 2, Name: "Line Operator", Password: "operator123"},
}

// RegisterRoutes mounts the stub endpoints on the gateway router.
func RegisterRoutes(router chi.Router) {
	if err := handlertools.RegisterValidations(
		map[string]func(fl validator.FieldLevel) bool{"notblank": handlertools.NotBlank},
	); err != nil {
		log.Errorf("failed to register stub validations: %s", err)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthHandler)
		r.Post("/auth/login", LoginHandler)
		r.NotFound(NotFoundHandler)
	})
}

// NotFoundHandler keeps unknown /api paths JSON instead of letting them
// fall through to the shell's HTML 404 page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	handlertools.RenderError(w, models.NewNotFoundError(r.URL.Path), http.StatusNotFound)
}

// HealthHandler reports the stub as the thing answering /api.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: ServiceName})
}

// LoginHandler verifies fixture credentials and hands out a throwaway
// token. Unknown users and wrong passwords get the same vague message
// so the response does not reveal which accounts exist.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlertools.DecodeAndValidateJSON(r, &req); err != nil {
		handlertools.RenderError(
			w,
			models.NewBadRequestError("username and password must not be blank"),
			http.StatusBadRequest,
		)
		return
	}

	username := strings.TrimSpace(req.Username)

	user, ok := stubUsers[username]
	if !ok || user.Password != req.Password {
		log.Warnf("stub login failed for user %q", username)
		renderJSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Message: "invalid username or password",
		})
		return
	}

	token, err := generateToken()
	if err != nil {
		handlertools.RenderError(w, err, http.StatusInternalServerError)
		return
	}

	log.Infof("stub login succeeded for user %q", username)

	renderJSON(w, http.StatusOK, LoginResponse{
		UserID:   user.ID,
		UserName: user.Name,
		Token:    token,
		Message:  "login successful",
	})
}

// generateToken mints an opaque throwaway token. Nothing validates it;
// it only lets the new front end exercise its login flow.
func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating stub token: %w", err)
	}
	return "temp_token_" + base64.RawURLEncoding.EncodeToString(raw), nil
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := handlertools.EncodeJSON(w, v); err != nil {
		log.Errorf("failed to encode response: %s", err)
	}
}
