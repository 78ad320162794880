package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/handler"
	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, userID string, reviewID int64, text string) (*dto.CommentView, error) {
	args := m.Called(ctx, userID, reviewID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentView), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, commentID int64, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func setupCommentRouter(mockService *MockCommentService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewCommentHandler(mockService, testLogger())
	h.RegisterRoutes(r, mockAuthMiddleware(userID))
	return r
}

func postForm(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var body string
	if form != nil {
		body = form.Encode()
	}
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestCommentHandler_Create(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupCommentRouter(mockService, "user-1")

	view := &dto.CommentView{ID: 11, Author: "testuser", UserID: "user-1", Text: "Rich broth"}
	mockService.On("Create", mock.Anything, "user-1", int64(7), "Rich broth").Return(view, nil)

	w := postForm(r, "/comment/7", url.Values{"comment": {"Rich broth"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool            `json:"success"`
		Comment dto.CommentView `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(11), body.Comment.ID)
	assert.Equal(t, "testuser", body.Comment.Author)
	mockService.AssertExpectations(t)
}

func TestCommentHandler_CreateEmpty(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupCommentRouter(mockService, "user-1")

	mockService.On("Create", mock.Anything, "user-1", int64(7), "").
		Return(nil, fmt.Errorf("%w: comment cannot be empty", service.ErrValidation))

	w := postForm(r, "/comment/7", url.Values{"comment": {""}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "comment cannot be empty")
}

func TestCommentHandler_CreateRequiresAuth(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupCommentRouter(mockService, "")

	w := postForm(r, "/comment/7", url.Values{"comment": {"hi"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestCommentHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"foreign or missing", service.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCommentService)
			r := setupCommentRouter(mockService, "user-1")
			mockService.On("Delete", mock.Anything, int64(11), "user-1").Return(tt.err)

			w := postForm(r, "/comment/11/delete", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
