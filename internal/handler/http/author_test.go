package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpHandler "github.com/Derplicity/messaging-service/internal/handler/http"
	"github.com/Derplicity/messaging-service/internal/hub"
	"github.com/Derplicity/messaging-service/internal/notify"
	"github.com/Derplicity/messaging-service/internal/repository"
	"github.com/Derplicity/messaging-service/internal/repository/mocks"
	"github.com/Derplicity/messaging-service/internal/service"
)

const authorID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

// noopPublisher 满足 Notifier 依赖，测试中不关心广播
type noopPublisher struct{}

func (noopPublisher) Publish(channel, event string, payload interface{}, exclude *hub.Client) {}

func newAuthorRouter(t *testing.T) (*gin.Engine, *mocks.AuthorRepository, *mocks.RoomRepository, *mocks.MessageRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authorRepo := new(mocks.AuthorRepository)
	roomRepo := new(mocks.RoomRepository)
	messageRepo := new(mocks.MessageRepository)

	authorService := service.NewAuthorService(authorRepo, roomRepo, messageRepo)
	notifier := notify.NewNotifier(noopPublisher{}, roomRepo)
	handler := httpHandler.NewAuthorHandler(authorService, notifier)

	router := gin.New()
	group := router.Group("/api/v1/authors")
	group.POST("", handler.CreateAuthor)
	group.GET("", handler.GetAuthors)
	group.GET("/:id", handler.GetAuthor)
	group.PUT("/:id", handler.UpdateAuthor)
	group.PUT("/:id/archive", handler.ArchiveAuthor)
	group.DELETE("/:id", handler.DeleteAuthor)
	return router, authorRepo, roomRepo, messageRepo
}

func TestAuthorHandler_CreateAuthor_Success(t *testing.T) {
	router, authorRepo, _, _ := newAuthorRouter(t)

	authorRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Author")).Return(nil).Once()

	body := bytes.NewBufferString(`{"id":"` + authorID + `","firstName":"Ada","lastName":"Lovelace"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/authors", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/authors/"+authorID, w.Header().Get("Location"))

	var resp map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp, "author")
	assert.Equal(t, authorID, resp["author"]["id"])
	assert.Equal(t, "Ada", resp["author"]["firstName"])
	authorRepo.AssertExpectations(t)
}

func TestAuthorHandler_CreateAuthor_ValidationErrorShape(t *testing.T) {
	// 校验失败聚合为一次响应：{ message, fields }
	router, authorRepo, _, _ := newAuthorRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/authors", bytes.NewBufferString(`{"id":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid fields.", resp.Message)
	assert.Equal(t, "invalid", resp.Fields["id"])
	assert.Equal(t, "required", resp.Fields["firstName"])
	assert.Equal(t, "required", resp.Fields["lastName"])
	authorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthorHandler_GetAuthor_NotFound(t *testing.T) {
	router, authorRepo, _, _ := newAuthorRouter(t)

	authorRepo.On("FindByID", mock.Anything, authorID).Return(nil, repository.ErrAuthorNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/authors/"+authorID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "author not found", resp["message"])
}

func TestAuthorHandler_GetAuthors_DefaultQuery(t *testing.T) {
	// 未给出查询参数时：不含已归档，默认页大小 10
	router, authorRepo, _, _ := newAuthorRouter(t)

	authorRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(q repository.AuthorQuery) bool {
		return !q.IncludeArchived && q.Limit == 10 && q.CreatedBefore.IsZero()
	})).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/authors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	authorRepo.AssertExpectations(t)
}

func TestAuthorHandler_GetAuthors_QueryParams(t *testing.T) {
	router, authorRepo, _, _ := newAuthorRouter(t)

	authorRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(q repository.AuthorQuery) bool {
		return q.IncludeArchived && q.Limit == 0 && q.CreatedBefore.UnixMilli() == 1735689600000
	})).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/authors?includeArchived=1&limit=0&createdBefore=1735689600000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	authorRepo.AssertExpectations(t)
}
