package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostaproject/bap-api/app/database"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func (h *Handler) ListArticles(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro page inválido"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro limit inválido"})
		return
	}
	limit = min(limit, maxPageSize)

	ctx := c.Request.Context()
	articles, err := h.articles.ListArticles(ctx, limit, (page-1)*limit)
	if err != nil {
		dbError(c, "list_articles", err)
		return
	}

	if total, err := h.articles.GetArticleCount(ctx); err == nil {
		c.Header("X-Total-Count", strconv.Itoa(total))
	}
	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.articles.GetArticle(c.Request.Context(), slug)
	if err != nil {
		dbError(c, "get_article", err, "slug", slug)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artículo no encontrado"})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.articles.GetArticle(ctx, req.Slug)
	if err != nil {
		dbError(c, "get_article", err, "slug", req.Slug)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug ya existente"})
		return
	}

	article := &database.Article{
		Slug:            req.Slug,
		Title:           req.Title,
		Author:          req.Author,
		Date:            req.Date,
		Excerpt:         req.Excerpt,
		Image:           req.Image,
		ImageAlt:        req.ImageAlt,
		Content:         req.Content,
		Related:         req.Related,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
	}
	if err := h.articles.CreateArticle(ctx, article); err != nil {
		dbError(c, "create_article", err, "slug", req.Slug)
		return
	}

	slog.Info("Article created", "slug", article.Slug, "user_id", c.GetInt64(ctxUserID))
	c.JSON(http.StatusCreated, article)
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	article, err := h.articles.GetArticle(ctx, slug)
	if err != nil {
		dbError(c, "get_article", err, "slug", slug)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artículo no encontrado"})
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	setIf(&article.Title, req.Title)
	setIf(&article.Author, req.Author)
	setIf(&article.Date, req.Date)
	setIf(&article.Excerpt, req.Excerpt)
	setIf(&article.Image, req.Image)
	setIf(&article.Content, req.Content)
	setIf(&article.Related, req.Related)
	setIf(&article.MetaDescription, req.MetaDescription)
	setIf(&article.MetaKeywords, req.MetaKeywords)
	if req.ImageAlt != nil {
		article.ImageAlt = req.ImageAlt
	}

	now := time.Now().UTC()
	article.UpdatedAt = &now

	if err := h.articles.UpdateArticle(ctx, article); err != nil {
		dbError(c, "update_article", err, "slug", slug)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	slug := c.Param("slug")

	err := h.articles.DeleteArticle(c.Request.Context(), slug)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artículo no encontrado"})
		return
	}
	if err != nil {
		dbError(c, "delete_article", err, "slug", slug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artículo eliminado correctamente"})
}
