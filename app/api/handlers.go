package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostaproject/bap-api/app/auth"
	"github.com/boostaproject/bap-api/app/database"
)

func NewHandler(db *database.DB, tokens *auth.Tokens, version string) *Handler {
	return &Handler{
		articles:  database.NewArticleRepository(db),
		projects:  database.NewProjectRepository(db),
		users:     database.NewUserRepository(db),
		favorites: database.NewFavoriteRepository(db),
		tokens:    tokens,
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	ctx := c.Request.Context()
	if count, err := h.projects.GetProjectCount(ctx); err == nil {
		health["projects"] = count
	}
	if count, err := h.articles.GetArticleCount(ctx); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
}

func dbError(c *gin.Context, operation string, err error, attrs ...any) {
	args := append([]any{"operation", operation, "error", err}, attrs...)
	slog.Error("Database error", args...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}
