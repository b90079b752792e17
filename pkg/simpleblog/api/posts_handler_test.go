package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/repo/memory"
	memorystorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/memory"
)

// identityInjector stands in for the JWT middleware in handler tests.
func identityInjector(identity simpleblog.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func newTestServer(t *testing.T, identity simpleblog.Identity) *httptest.Server {
	t.Helper()

	repo := memory.New()
	svc, err := simpleblog.New(
		simpleblog.WithRepository(repo),
		simpleblog.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)
	require.NoError(t, repo.CreateCategory(context.Background(), &simpleblog.Category{Name: "General"}))

	r := chi.NewRouter()
	r.Use(identityInjector(identity))
	r.Mount("/posts", NewPostsHandler(svc).Routes())
	r.Mount("/comments", NewCommentsHandler(svc).Routes())
	r.Mount("/categories", NewCategoriesHandler(svc).Routes())
	r.Mount("/files", NewFilesHandler(svc).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func adminIdentity() simpleblog.Identity {
	return simpleblog.Identity{
		ID:          uuid.New(),
		DisplayName: "admin",
		Roles:       []simpleblog.Role{simpleblog.RoleSuperAdmin},
	}
}

// postForm builds the multipart body CreatePost and UpdatePost expect.
func postForm(t *testing.T, title, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"title":        title,
		"description":  "a description",
		"content":      "some content",
		"publish_date": "2024-05-01",
		"publish_time": "12:30",
		"category_id":  "1",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if filename != "" {
		part, err := writer.CreateFormFile(uploadFieldName, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func createPostHTTP(t *testing.T, server *httptest.Server, title, filename string) simpleblog.Post {
	t.Helper()

	body, contentType := postForm(t, title, filename)
	resp, err := http.Post(server.URL+"/posts", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post simpleblog.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	return post
}

func TestCreatePostEndpoint(t *testing.T) {
	server := newTestServer(t, adminIdentity())

	post := createPostHTTP(t, server, "hello", "cat.png")
	assert.NotZero(t, post.ID)
	assert.Equal(t, "hello", post.Title)
	assert.Equal(t, "/files/cat.png", post.ImagePath)
}

func TestCreatePostEndpointErrors(t *testing.T) {
	t.Run("anonymous caller gets 403", func(t *testing.T) {
		server := newTestServer(t, simpleblog.Identity{})
		body, contentType := postForm(t, "hello", "cat.png")
		resp, err := http.Post(server.URL+"/posts", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing upload gets 400", func(t *testing.T) {
		server := newTestServer(t, adminIdentity())
		body, contentType := postForm(t, "hello", "")
		resp, err := http.Post(server.URL+"/posts", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unsupported extension gets 415", func(t *testing.T) {
		server := newTestServer(t, adminIdentity())
		body, contentType := postForm(t, "hello", "notes.txt")
		resp, err := http.Post(server.URL+"/posts", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})

	t.Run("blank fields get 400 with field list", func(t *testing.T) {
		server := newTestServer(t, adminIdentity())
		body, contentType := postForm(t, "", "cat.png")
		resp, err := http.Post(server.URL+"/posts", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var er ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
		require.Len(t, er.Fields, 1)
		assert.Equal(t, "title", er.Fields[0].Field)
	})
}

func TestGetAndListPostsEndpoint(t *testing.T) {
	server := newTestServer(t, adminIdentity())

	for i := 0; i < 4; i++ {
		createPostHTTP(t, server, fmt.Sprintf("post %d", i), "cat.png")
	}

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/posts/1")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var post simpleblog.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
		assert.Equal(t, "post 0", post.Title)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/posts/99")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("listing paginates", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/posts?page=2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page PostPageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 4, page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 3, page.PageSize)
	})
}

func TestUpdatePostEndpoint(t *testing.T) {
	server := newTestServer(t, adminIdentity())
	post := createPostHTTP(t, server, "before", "cat.png")

	body, contentType := postForm(t, "after", "")
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/posts/%d", server.URL, post.ID), body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated simpleblog.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "/files/cat.png", updated.ImagePath)
}

func TestDeletePostEndpoint(t *testing.T) {
	server := newTestServer(t, adminIdentity())
	post := createPostHTTP(t, server, "doomed", "cat.png")

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/posts/%d", server.URL, post.ID), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/posts/%d", server.URL, post.ID))
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestServeFileEndpoint(t *testing.T) {
	server := newTestServer(t, adminIdentity())
	createPostHTTP(t, server, "with image", "cat.png")

	t.Run("stored file streams back", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/files/cat.png")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("missing file is 404", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/files/missing.png")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListCategoriesEndpoint(t *testing.T) {
	server := newTestServer(t, simpleblog.Identity{})

	resp, err := http.Get(server.URL + "/categories")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []*simpleblog.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "General", categories[0].Name)
}
