package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostaproject/bap-api/app/database"
)

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		dbError(c, "list_projects", err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(projects)))
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	slug := c.Param("slug")

	project, err := h.projects.GetProject(c.Request.Context(), slug)
	if err != nil {
		dbError(c, "get_project", err, "slug", slug)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.projects.GetProject(ctx, req.Slug)
	if err != nil {
		dbError(c, "get_project", err, "slug", req.Slug)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug ya existente"})
		return
	}

	project := &database.Project{
		Slug:            req.Slug,
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Description:     req.Description,
		Status:          req.Status,
		Category:        req.Category,
		Featured:        req.Featured,
		Priority:        req.Priority,
		MainImageURL:    req.MainImageURL,
		Gallery:         req.Gallery,
		InvestmentData:  req.InvestmentData,
		ContentSections: req.ContentSections,
	}
	if err := h.projects.CreateProject(ctx, project); err != nil {
		dbError(c, "create_project", err, "slug", req.Slug)
		return
	}

	slog.Info("Project created", "slug", project.Slug, "user_id", c.GetInt64(ctxUserID))
	c.JSON(http.StatusCreated, project)
}

// UpdateProject applies only the keys present in the body. The slug is the
// resource identity and cannot be changed here.
func (h *Handler) UpdateProject(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	project, err := h.projects.GetProject(ctx, slug)
	if err != nil {
		dbError(c, "get_project", err, "slug", slug)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	setIf(&project.Title, req.Title)
	setIf(&project.Subtitle, req.Subtitle)
	setIf(&project.Description, req.Description)
	setIf(&project.Status, req.Status)
	setIf(&project.Category, req.Category)
	setIf(&project.Featured, req.Featured)
	setIf(&project.Priority, req.Priority)
	setIf(&project.MainImageURL, req.MainImageURL)
	setRawIf(&project.Gallery, req.Gallery)
	setRawIf(&project.InvestmentData, req.InvestmentData)
	setRawIf(&project.ContentSections, req.ContentSections)

	now := time.Now().UTC()
	project.UpdatedAt = &now

	if err := h.projects.UpdateProject(ctx, project); err != nil {
		dbError(c, "update_project", err, "slug", slug)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	slug := c.Param("slug")

	err := h.projects.DeleteProject(c.Request.Context(), slug)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}
	if err != nil {
		dbError(c, "delete_project", err, "slug", slug)
		return
	}

	slog.Info("Project deleted", "slug", slug, "user_id", c.GetInt64(ctxUserID))
	c.JSON(http.StatusOK, gin.H{"message": "Proyecto eliminado correctamente"})
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setRawIf overwrites dst when the key was sent; an explicit null clears it.
func setRawIf(dst *json.RawMessage, v json.RawMessage) {
	if len(v) > 0 {
		*dst = v
	}
}
