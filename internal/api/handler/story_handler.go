package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sthaniya/sthaniya-api/internal/api/metrics"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

// StoryHandler exposes the authenticated story endpoints.
type StoryHandler struct {
	service ports.StoryService
}

func NewStoryHandler(service ports.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

// Create handles POST /api/stories/create.
//
// @Summary      Create a story
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storyRequest  true  "Story fields"
// @Success      201   {object}  storyResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/stories/create [post]
func (h *StoryHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req storyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.Create(c.Request().Context(), user, toStoryContent(req))
	if err != nil {
		return err
	}

	metrics.StoriesCreatedTotal.WithLabelValues(string(story.Category)).Inc()
	return c.JSON(http.StatusCreated, storyResponse{
		Message: "Story created successfully",
		Story:   story,
	})
}

// Get handles GET /api/stories/:id. Each read counts a view.
//
// @Summary      Get a story by id
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Story id"
// @Success      200  {object}  storyResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/stories/{id} [get]
func (h *StoryHandler) Get(c echo.Context) error {
	story, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storyResponse{Story: story})
}

// ListMine handles GET /api/stories/my/stories.
//
// @Summary      List the authenticated user's stories
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  storyListResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/stories/my/stories [get]
func (h *StoryHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	stories, err := h.service.ListByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storyListResponse{Stories: stories})
}

// ListByUser handles GET /api/stories/user/:id.
//
// @Summary      List another user's stories
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author user id"
// @Success      200  {object}  storyListResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/stories/user/{id} [get]
func (h *StoryHandler) ListByUser(c echo.Context) error {
	stories, err := h.service.ListByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storyListResponse{Stories: stories})
}

// Update handles PUT /api/stories/:id. Only the author can update; a
// non-owner gets the same 404 a nonexistent id produces.
//
// @Summary      Update a story
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Story id"
// @Param        body  body      storyRequest  true  "Replacement story fields"
// @Success      200   {object}  storyResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/stories/{id} [put]
func (h *StoryHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req storyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.Update(c.Request().Context(), c.Param("id"), user.ID, toStoryContent(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storyResponse{
		Message: "Story updated successfully",
		Story:   story,
	})
}

// Delete handles DELETE /api/stories/:id.
//
// @Summary      Delete a story
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Story id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/stories/{id} [delete]
func (h *StoryHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Story deleted successfully"})
}

// Like handles POST /api/stories/:id/like. Liking twice is a no-op.
//
// @Summary      Like a story
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Story id"
// @Success      200  {object}  storyResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/stories/{id}/like [post]
func (h *StoryHandler) Like(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	story, err := h.service.Like(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return err
	}

	metrics.StoryLikesTotal.Inc()
	return c.JSON(http.StatusOK, storyResponse{Story: story})
}

// Comment handles POST /api/stories/:id/comment.
//
// @Summary      Comment on a story
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Story id"
// @Param        body  body      commentRequest  true  "Comment text"
// @Success      201   {object}  storyResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/stories/{id}/comment [post]
func (h *StoryHandler) Comment(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.Comment(c.Request().Context(), c.Param("id"), user, req.Comment)
	if err != nil {
		return err
	}

	metrics.StoryCommentsTotal.Inc()
	return c.JSON(http.StatusCreated, storyResponse{Story: story})
}

// DeleteComment handles DELETE /api/stories/:id/comment/:commentId. The
// requester must have authored the comment or own the story.
//
// @Summary      Delete a comment
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Story id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  storyResponse
// @Failure      404        {object}  map[string]string
// @Router       /api/stories/{id}/comment/{commentId} [delete]
func (h *StoryHandler) DeleteComment(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	story, err := h.service.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storyResponse{Story: story})
}
