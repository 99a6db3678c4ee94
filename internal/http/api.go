package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"article-server/internal/auth"
	"article-server/internal/domain"
	"article-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	articles service.ArticleService
	tokens   *auth.TokenManager
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, articles service.ArticleService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		articles: articles,
		tokens:   tokens,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	router.POST("/register", h.register)
	router.POST("/login", h.login)

	router.GET("/articles", h.optionalAuth(), h.listArticles)
	router.GET("/articles/:id", h.optionalAuth(), h.getArticle)

	router.POST("/articles", h.requireAuth(), h.createArticle)
	router.PUT("/articles/:id", h.requireAuth(), h.updateArticle)
	router.DELETE("/articles/:id", h.requireAuth(), h.deleteArticle)
	router.GET("/my-articles", h.requireAuth(), h.listMyArticles)
	router.DELETE("/delete-account", h.requireAuth(), h.deleteAccount)
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// articleRequest serves both create and full-replacement update. Published
// defaults to true when omitted.
type articleRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

func (r articleRequest) published() bool {
	if r.Published == nil {
		return true
	}
	return *r.Published
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ArticleResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) listArticles(c *gin.Context) {
	published, err := strconv.ParseBool(c.DefaultQuery("published", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag published"})
		return
	}

	articles, err := h.articles.ListVisible(c.Request.Context(), identityFrom(c), published)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesToResponse(articles))
}

func (h *Handler) listMyArticles(c *gin.Context) {
	articles, err := h.articles.ListByOwner(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesToResponse(articles))
}

func (h *Handler) getArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.articles.Get(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, articleToResponse(*article))
}

func (h *Handler) createArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), identityFrom(c), req.Title, req.Content, req.published())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, articleToResponse(*article))
}

func (h *Handler) updateArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), identityFrom(c), id, req.Title, req.Content, req.published())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, articleToResponse(*article))
}

func (h *Handler) deleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.articles.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	requester := identityFrom(c)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), requester.ID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func articleToResponse(article domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Published: article.Published,
		OwnerID:   article.OwnerID,
		CreatedAt: article.CreatedAt.Format(time.RFC3339),
		UpdatedAt: article.UpdatedAt.Format(time.RFC3339),
	}
}

func articlesToResponse(articles []domain.Article) []ArticleResponse {
	resp := make([]ArticleResponse, len(articles))
	for i := range articles {
		resp[i] = articleToResponse(articles[i])
	}
	return resp
}
