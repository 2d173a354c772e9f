package server

import (
	"net/http"

	"soundhive/internal/models"
	"soundhive/internal/repositories"
)

// UserHandler serves account routes and the credential login route.
type UserHandler struct {
	repo *repositories.UserRepository
}

// NewUserHandler creates a new UserHandler backed by the given repository.
func NewUserHandler(repo *repositories.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *UserHandler) Routes() []string {
	return []string{
		"GET /api/users",
		"POST /api/users",
		"GET /api/users/{id}",
		"POST /api/auth/login",
	}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/auth/login":
		h.login(w, r)
	case r.PathValue("id") != "":
		h.get(w, r)
	case r.Method == http.MethodPost:
		h.create(w, r)
	default:
		h.list(w, r)
	}
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	dtos := make([]models.User, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, user.DTO())
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.DTO())
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.User
	if !decodeJSON(w, r, &dto) {
		return
	}

	user := models.NewPersistedUser(0, dto.Username, dto.Email, dto.Password)
	user.SetID(dto.ID)
	if err := h.repo.Create(user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user.DTO())
}

// login checks the email and password pair and answers with the account
// document, password omitted. Invalid credentials answer 401.
func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, err := h.repo.GetByCredentials(creds.Email, creds.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, user.DTO())
}
