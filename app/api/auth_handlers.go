package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boostaproject/bap-api/app/auth"
	"github.com/boostaproject/bap-api/app/database"
)

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.users.GetUserByEmail(ctx, email)
	if err != nil {
		dbError(c, "get_user", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	user := &database.User{
		Username:     req.Username,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		dbError(c, "create_user", err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		dbError(c, "get_user", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64(ctxUserID)

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		dbError(c, "get_user", err, "user_id", userID)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *database.User) {
	token, err := h.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		slog.Error("Token issue failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(status, authResponse{AccessToken: token, User: user})
}
