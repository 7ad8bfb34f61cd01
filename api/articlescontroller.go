package api

import (
	"errors"
	"log/slog"
	"net/http"

	"newsbrief/pipeline"
	"newsbrief/scraper"
	"newsbrief/summarizer"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes registers article-related routes.
func RegisterArticleRoutes(r *gin.Engine, svc ArticleService) {
	h := &articleHandler{svc: svc}
	r.POST("/articles", h.create)
	r.GET("/articles", h.list)
	r.DELETE("/articles", h.delete)
}

// CreateArticleRequest is the body of POST /articles.
type CreateArticleRequest struct {
	URL string `json:"url" binding:"required"`
}

// DeleteArticleResponse is returned by DELETE /articles.
type DeleteArticleResponse struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

type articleHandler struct {
	svc ArticleService
}

// create scrapes, summarizes and stores the article, returning the stored record.
func (h *articleHandler) create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, pipeline.KindInvalidInput, "request body must be JSON with a url field")
		return
	}

	article, err := h.svc.Create(c.Request.Context(), req.URL)
	if err != nil {
		status, kind := statusFor(err)
		respondError(c, status, kind, err.Error())
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *articleHandler) list(c *gin.Context) {
	articles, err := h.svc.List(c.Request.Context())
	if err != nil {
		status, kind := statusFor(err)
		respondError(c, status, kind, err.Error())
		return
	}
	c.JSON(http.StatusOK, articles)
}

// delete removes the article named by the url query parameter. Deleting a
// URL with no stored record succeeds with deleted=false.
func (h *articleHandler) delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		respondError(c, http.StatusBadRequest, pipeline.KindInvalidInput, "url query parameter is required")
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), url)
	if err != nil {
		status, kind := statusFor(err)
		respondError(c, status, kind, err.Error())
		return
	}

	resp := DeleteArticleResponse{Message: "Article deleted", Deleted: deleted}
	if !deleted {
		resp.Message = "No article stored for this url"
	}
	c.JSON(http.StatusOK, resp)
}

// statusFor maps a pipeline failure to an HTTP status and error kind.
func statusFor(err error) (int, pipeline.Kind) {
	kind := pipeline.KindOf(err)
	switch kind {
	case pipeline.KindInvalidInput:
		return http.StatusBadRequest, kind
	case pipeline.KindScrape:
		var se *scraper.ScrapeError
		if errors.As(err, &se) {
			switch se.Kind {
			case scraper.KindTimeout:
				return http.StatusGatewayTimeout, kind
			case scraper.KindEmpty:
				return http.StatusUnprocessableEntity, kind
			}
		}
		return http.StatusBadGateway, kind
	case pipeline.KindSummarization:
		var se *summarizer.SummarizationError
		if errors.As(err, &se) && se.Kind == summarizer.KindRateLimit {
			return http.StatusTooManyRequests, kind
		}
		return http.StatusBadGateway, kind
	case pipeline.KindStorage:
		return http.StatusInternalServerError, kind
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondError(c *gin.Context, status int, kind pipeline.Kind, message string) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", message, "kind", kind, "request_id", c.GetString(requestIDKey))
	}
	c.JSON(status, gin.H{"error": kind, "message": message})
}
