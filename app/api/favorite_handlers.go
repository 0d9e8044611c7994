package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boostaproject/bap-api/app/database"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	userID := c.GetInt64(ctxUserID)

	favorites, err := h.favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		dbError(c, "list_favorites", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := c.GetInt64(ctxUserID)

	project, err := h.projects.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		dbError(c, "get_project", err, "project_id", req.ProjectID)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}

	existing, err := h.favorites.GetFavorite(ctx, userID, req.ProjectID)
	if err != nil {
		dbError(c, "get_favorite", err, "user_id", userID, "project_id", req.ProjectID)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El proyecto ya está en favoritos"})
		return
	}

	favorite := &database.Favorite{UserID: userID, ProjectID: req.ProjectID}
	if err := h.favorites.CreateFavorite(ctx, favorite); err != nil {
		dbError(c, "create_favorite", err, "user_id", userID, "project_id", req.ProjectID)
		return
	}
	favorite.Project = project

	c.JSON(http.StatusCreated, favorite)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id inválido"})
		return
	}
	userID := c.GetInt64(ctxUserID)

	err = h.favorites.DeleteFavorite(c.Request.Context(), userID, projectID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorito no encontrado"})
		return
	}
	if err != nil {
		dbError(c, "delete_favorite", err, "user_id", userID, "project_id", projectID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorito eliminado correctamente"})
}
