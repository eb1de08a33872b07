package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"simply-blog/api/router"
	"simply-blog/config"
	"simply-blog/repositories"
	"simply-blog/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repositories.NewMemoryPostRepository()
	svc := services.NewPostService(store, config.BlogConfig{
		DefaultAuthor:   "Sharon D.",
		DefaultCategory: "Lifestyle",
		Categories:      []string{"Beauty", "Wellness", "Wisdom", "Aging", "Lifestyle"},
	})
	return router.New(svc)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if len(w.Body.Bytes()) > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func createPost(t *testing.T, r *gin.Engine, body map[string]any) map[string]any {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/posts", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	return resp["data"].(map[string]any)
}

func TestCreatePost(t *testing.T) {
	r := newTestRouter()

	data := createPost(t, r, map[string]any{
		"title":   "Hello, World!! Today",
		"content": "first post",
	})
	assert.Equal(t, "hello-world-today", data["slug"])
	assert.Equal(t, "Sharon D.", data["author"])
	assert.Equal(t, "Draft", data["status"])
	assert.NotEmpty(t, data["id"])
}

func TestCreatePostMissingContent(t *testing.T) {
	r := newTestRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/api/posts", map[string]any{"title": "No Body"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Content is required", resp["message"])
}

func TestGetPostIncrementsViews(t *testing.T) {
	r := newTestRouter()
	data := createPost(t, r, map[string]any{"title": "Viewed", "content": "body"})
	id := data["id"].(string)

	w, resp := doJSON(t, r, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["data"].(map[string]any)["views"])

	_, resp = doJSON(t, r, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, float64(2), resp["data"].(map[string]any)["views"])
}

func TestGetPostBySlug(t *testing.T) {
	r := newTestRouter()
	createPost(t, r, map[string]any{"title": "Slugged Post", "content": "body"})

	w, resp := doJSON(t, r, http.MethodGet, "/api/posts/slug/slugged-post", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Slugged Post", resp["data"].(map[string]any)["title"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/posts/slug/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPostErrors(t *testing.T) {
	r := newTestRouter()

	// Wrong identifier shape for the active backend is a 400.
	w, resp := doJSON(t, r, http.MethodGet, "/api/posts/64b2f7a9c3e1d204587a9b10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", resp["message"])
}

func TestListPostsEnvelope(t *testing.T) {
	r := newTestRouter()
	for i := 0; i < 12; i++ {
		createPost(t, r, map[string]any{
			"title":   fmt.Sprintf("Post %02d", i),
			"content": "body",
			"status":  "Published",
		})
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/posts?status=Published&page=2&limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, resp["data"], 5)

	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
	assert.Equal(t, float64(12), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
}

func TestUpdatePost(t *testing.T) {
	r := newTestRouter()
	data := createPost(t, r, map[string]any{
		"title":           "Before",
		"content":         "body",
		"metaTitle":       "old meta",
		"metaDescription": "old description",
	})
	id := data["id"].(string)

	w, resp := doJSON(t, r, http.MethodPut, "/api/posts/"+id, map[string]any{
		"title":     "After",
		"metaTitle": "new meta",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post updated successfully", resp["message"])

	updated := resp["data"].(map[string]any)
	assert.Equal(t, "After", updated["title"])
	seo := updated["seo"].(map[string]any)
	assert.Equal(t, "new meta", seo["metaTitle"])
	assert.Equal(t, "old description", seo["metaDescription"])
	// Slug derives from the creation title only.
	assert.Equal(t, "before", updated["slug"])

	w, _ = doJSON(t, r, http.MethodPut, "/api/posts/999", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	r := newTestRouter()
	data := createPost(t, r, map[string]any{"title": "Doomed", "content": "body"})
	id := data["id"].(string)

	w, resp := doJSON(t, r, http.MethodDelete, "/api/posts/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", resp["message"])
	assert.Equal(t, "Doomed", resp["data"].(map[string]any)["title"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikePost(t *testing.T) {
	r := newTestRouter()
	data := createPost(t, r, map[string]any{"title": "Liked", "content": "body"})
	id := data["id"].(string)

	w, resp := doJSON(t, r, http.MethodPatch, "/api/posts/"+id+"/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post liked", resp["message"])
	assert.Equal(t, float64(1), resp["likes"])

	_, resp = doJSON(t, r, http.MethodPatch, "/api/posts/"+id+"/like", nil)
	assert.Equal(t, float64(2), resp["likes"])

	w, _ = doJSON(t, r, http.MethodPatch, "/api/posts/999/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	createPost(t, r, map[string]any{"title": "One", "content": "body"})

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "memory", resp["backend"])
	assert.Equal(t, float64(1), resp["total"])
}
