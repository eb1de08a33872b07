package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simply-blog/dto"
	"simply-blog/logger"
	"simply-blog/repositories"
	"simply-blog/services"
)

// respondError maps service/store error kinds onto the HTTP surface:
// validation → 400, missing record → 404, unreachable backend → 503,
// anything else → 500 with the underlying detail for diagnostics.
func respondError(c *gin.Context, err error, message string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: verr.Message})
	case errors.Is(err, repositories.ErrInvalidID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid post id"})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Success: false, Message: "Post not found"})
	case errors.Is(err, repositories.ErrUnavailable):
		logger.ErrorWithFields("storage backend unavailable", logger.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Success: false, Message: message, Error: err.Error()})
	default:
		logger.ErrorWithFields(message, logger.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Message: message, Error: err.Error()})
	}
}

// ListPostsHandler serves GET /api/posts with filtering and pagination.
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListPostsInput
		in.Status = c.Query("status")
		in.Category = c.Query("category")
		if f := c.Query("featured"); f != "" {
			featured := f == "true"
			in.Featured = &featured
		}
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

		resp, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "Error fetching posts")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetPostHandler serves GET /api/posts/:id. Fetching a post increments
// its view counter; the read is deliberately not idempotent.
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error fetching post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponse{Success: true, Data: *post})
	}
}

// GetPostBySlugHandler serves GET /api/posts/slug/:slug, first match wins.
func GetPostBySlugHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err, "Error fetching post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponse{Success: true, Data: *post})
	}
}

// CreatePostHandler serves POST /api/posts.
func CreatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CreatePostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
			return
		}
		post, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "Error creating post")
			return
		}
		c.JSON(http.StatusCreated, dto.PostResponse{Success: true, Message: "Post created successfully", Data: *post})
	}
}

// UpdatePostHandler serves PUT /api/posts/:id with partial-update
// semantics: only fields present in the body are applied.
func UpdatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UpdatePostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
			return
		}
		post, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Error updating post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponse{Success: true, Message: "Post updated successfully", Data: *post})
	}
}

// DeletePostHandler serves DELETE /api/posts/:id and echoes the deleted
// record for confirmation.
func DeletePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error deleting post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponse{Success: true, Message: "Post deleted successfully", Data: *post})
	}
}

// LikePostHandler serves PATCH /api/posts/:id/like.
func LikePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		likes, err := svc.Like(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error liking post")
			return
		}
		c.JSON(http.StatusOK, dto.LikeResponse{Success: true, Message: "Post liked", Likes: likes})
	}
}

// HealthHandler reports the active backend kind and record count.
func HealthHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.Health(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Success: false, Message: "Backend unavailable", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
