package handlers

import (
	"log"
	"net/http"

	"newsboard/internal/middleware"
	"newsboard/internal/models"
	"newsboard/internal/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	users *store.UserStore
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// AuthData is returned by signup and login
type AuthData struct {
	Token string             `json:"token"`
	User  models.CurrentUser `json:"user"`
}

// Signup creates an account and logs it in
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.AuthRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	data, ok := h.startSession(c, user)
	if !ok {
		return
	}
	respond(c, http.StatusCreated, "User created", data)
}

// Login checks credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AuthRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	data, ok := h.startSession(c, user)
	if !ok {
		return
	}
	respond(c, http.StatusOK, "Logged In", data)
}

// Logout clears the session and sends the client home
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.EndSession(c); err != nil {
		log.Printf("clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// User returns the logged in user
func (h *AuthHandler) User(c *gin.Context) {
	respond(c, http.StatusOK, "", middleware.CurrentUser(c))
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) (*AuthData, bool) {
	if err := middleware.StartSession(c, user.ID); err != nil {
		handleError(c, err)
		return nil, false
	}
	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return &AuthData{
		Token: token,
		User:  models.CurrentUser{ID: user.ID, Username: user.Username},
	}, true
}
