package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sthaniya/sthaniya-api/internal/api/middleware"
	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

type stubStoryService struct {
	createFn        func(ctx context.Context, author *domain.User, content ports.StoryContent) (*domain.Story, error)
	getFn           func(ctx context.Context, id string) (*domain.Story, error)
	listByAuthorFn  func(ctx context.Context, authorID string) ([]*domain.Story, error)
	updateFn        func(ctx context.Context, id, authorID string, content ports.StoryContent) (*domain.Story, error)
	deleteFn        func(ctx context.Context, id, authorID string) error
	likeFn          func(ctx context.Context, id string, user *domain.User) (*domain.Story, error)
	commentFn       func(ctx context.Context, id string, user *domain.User, text string) (*domain.Story, error)
	deleteCommentFn func(ctx context.Context, id, commentID, requesterID string) (*domain.Story, error)
}

func (s *stubStoryService) Create(ctx context.Context, author *domain.User, content ports.StoryContent) (*domain.Story, error) {
	return s.createFn(ctx, author, content)
}

func (s *stubStoryService) Get(ctx context.Context, id string) (*domain.Story, error) {
	return s.getFn(ctx, id)
}

func (s *stubStoryService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Story, error) {
	return s.listByAuthorFn(ctx, authorID)
}

func (s *stubStoryService) Update(ctx context.Context, id, authorID string, content ports.StoryContent) (*domain.Story, error) {
	return s.updateFn(ctx, id, authorID, content)
}

func (s *stubStoryService) Delete(ctx context.Context, id, authorID string) error {
	return s.deleteFn(ctx, id, authorID)
}

func (s *stubStoryService) Like(ctx context.Context, id string, user *domain.User) (*domain.Story, error) {
	return s.likeFn(ctx, id, user)
}

func (s *stubStoryService) Comment(ctx context.Context, id string, user *domain.User, text string) (*domain.Story, error) {
	return s.commentFn(ctx, id, user, text)
}

func (s *stubStoryService) DeleteComment(ctx context.Context, id, commentID, requesterID string) (*domain.Story, error) {
	return s.deleteCommentFn(ctx, id, commentID, requesterID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "user-1", Name: "Alice"})
	c.Set(middleware.ContextKeyUserID, "user-1")
	return c
}

func TestStoryHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		createFn: func(_ context.Context, author *domain.User, content ports.StoryContent) (*domain.Story, error) {
			if author.ID != "user-1" {
				t.Fatalf("unexpected author: %q", author.ID)
			}
			if content.Title != "Momos" || content.Category != "street-food" {
				t.Fatalf("unexpected content: %+v", content)
			}
			return &domain.Story{ID: "story-1", Title: content.Title, Category: content.Category, Author: author.ID}, nil
		},
	}
	handler := NewStoryHandler(stub)

	body := `{"title":"Momos","foodItem":"Momo","personalStory":"Winter evenings.","category":"street-food"}`
	req := jsonRequest(http.MethodPost, "/api/stories/create", body)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Story created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestStoryHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		createFn: func(context.Context, *domain.User, ports.StoryContent) (*domain.Story, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewStoryHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/stories/create", `{"title":"Momos"}`)
	c := authedContext(e, req, httptest.NewRecorder())

	expectHTTPError(t, handler.Create(c), http.StatusBadRequest)
}

func TestStoryHandler_Create_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewStoryHandler(&stubStoryService{})

	req := jsonRequest(http.MethodPost, "/api/stories/create", `{}`)
	c := e.NewContext(req, httptest.NewRecorder())

	expectHTTPError(t, handler.Create(c), http.StatusUnauthorized)
}

func TestStoryHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		getFn: func(_ context.Context, id string) (*domain.Story, error) {
			if id != "story-1" {
				t.Fatalf("unexpected id: %q", id)
			}
			return &domain.Story{ID: id, Title: "Momos", Views: 3}, nil
		},
	}
	handler := NewStoryHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("story-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStoryHandler_Update_NotOwner(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		updateFn: func(_ context.Context, id, authorID string, _ ports.StoryContent) (*domain.Story, error) {
			if authorID != "user-1" {
				t.Fatalf("expected requester id, got %q", authorID)
			}
			return nil, domain.ErrStoryNotFound
		},
	}
	handler := NewStoryHandler(stub)

	body := `{"title":"Momos","foodItem":"Momo","personalStory":"Updated."}`
	req := jsonRequest(http.MethodPut, "/api/stories/story-1", body)
	c := authedContext(e, req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("story-1")

	if err := handler.Update(c); !errors.Is(err, domain.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}

func TestStoryHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		deleteFn: func(_ context.Context, id, authorID string) error {
			if id != "story-1" || authorID != "user-1" {
				t.Fatalf("unexpected args: %q %q", id, authorID)
			}
			return nil
		},
	}
	handler := NewStoryHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/stories/story-1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("story-1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Story deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestStoryHandler_Like(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		likeFn: func(_ context.Context, id string, user *domain.User) (*domain.Story, error) {
			return &domain.Story{ID: id, Likes: []domain.Like{{User: user.ID}}}, nil
		},
	}
	handler := NewStoryHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/stories/story-1/like", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("story-1")

	if err := handler.Like(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStoryHandler_Comment_Empty(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		commentFn: func(context.Context, string, *domain.User, string) (*domain.Story, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewStoryHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/stories/story-1/comment", `{"comment":""}`)
	c := authedContext(e, req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("story-1")

	expectHTTPError(t, handler.Comment(c), http.StatusBadRequest)
}

func TestStoryHandler_DeleteComment(t *testing.T) {
	e := newTestEcho()
	stub := &stubStoryService{
		deleteCommentFn: func(_ context.Context, id, commentID, requesterID string) (*domain.Story, error) {
			if id != "story-1" || commentID != "comment-1" || requesterID != "user-1" {
				t.Fatalf("unexpected args: %q %q %q", id, commentID, requesterID)
			}
			return &domain.Story{ID: id, Comments: []domain.Comment{}}, nil
		},
	}
	handler := NewStoryHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/stories/story-1/comment/comment-1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id", "commentId")
	c.SetParamValues("story-1", "comment-1")

	if err := handler.DeleteComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
