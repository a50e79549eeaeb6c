package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
	tokenMaxAge int
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService, tokenMaxAge int) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		tokenMaxAge: tokenMaxAge,
	}
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	domain.PublicUser
}

// Register godoc
// @Summary      Registers a new user
// @Description  Creates a user account; username and email must be unique
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /users/create [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Login godoc
// @Summary      Logs a user in
// @Description  Verifies credentials, sets the access token cookie and returns the token with the public user
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      400
// @Router       /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   h.tokenMaxAge,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		PublicUser:  result.User,
	})
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Clears the access token cookie; no server-side state is touched
// @Tags         users
// @Success      201
// @Router       /users/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "success"})
}

// WhoAmI godoc
// @Summary      Resolves the caller's identity
// @Tags         users
// @Success      200
// @Failure      401
// @Router       /users/whoami [get]
func (h *UserHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := h.userService.WhoAmI(r.Context(), cookie.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetUser godoc
// @Summary      Fetches a user by id
// @Tags         users
// @Success      200
// @Failure      404
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListUsers godoc
// @Summary      Lists all users
// @Tags         users
// @Success      200
// @Router       /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
