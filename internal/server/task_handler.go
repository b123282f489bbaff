// internal/server/task_handler.go
package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
)

// handleCreateTask creates a task. No ownership gate: the creator need not
// become the owner.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in, err := toTaskInput(req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// handleGetTask returns a task with owner, executor and comments resolved.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// handleUpdateTask replaces the task's fields wholesale and returns the
// updated task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseUUIDQuery(c, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in, err := toTaskInput(req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// handleDeleteTask deletes a task and its comments.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// handleChangeStatus sets the task state.
func (s *Server) handleChangeStatus(c *gin.Context) {
	id, ok := parseUUIDQuery(c, "id")
	if !ok {
		return
	}

	state, err := models.ParseTaskState(c.Query("task-state"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.tasks.ChangeStatus(c.Request.Context(), id, state); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// handleSetExecutor assigns an executor to the task.
func (s *Server) handleSetExecutor(c *gin.Context) {
	id, ok := parseUUIDQuery(c, "id")
	if !ok {
		return
	}

	executorID, ok := parseUUIDQuery(c, "executor-id")
	if !ok {
		return
	}

	if err := s.tasks.SetExecutor(c.Request.Context(), id, executorID); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// handleListByOwner lists tasks by owner id with optional pagination.
func (s *Server) handleListByOwner(c *gin.Context) {
	s.handleList(c, s.tasks.ListByOwner)
}

// handleListByExecutor lists tasks by executor id with optional pagination.
func (s *Server) handleListByExecutor(c *gin.Context) {
	s.handleList(c, s.tasks.ListByExecutor)
}

func (s *Server) handleList(c *gin.Context, list func(ctx context.Context, id uuid.UUID, page *models.Page) ([]models.Task, error)) {
	id, ok := parseUUIDQuery(c, "id")
	if !ok {
		return
	}

	page, ok := parsePage(c)
	if !ok {
		return
	}

	tasks, err := list(c.Request.Context(), id, page)
	if err != nil {
		s.respondError(c, err)
		return
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = toTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, responses)
}

// handleAddComment attaches a comment to a task. The author is always the
// authenticated principal.
func (s *Server) handleAddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID format"})
		return
	}

	comment, err := s.tasks.AddComment(c.Request.Context(), taskID, req.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(*comment))
}

// parseUUIDParam converts a path parameter to a UUID.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDQuery converts a query parameter to a UUID.
func parseUUIDQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads the optional page/tasks_per_page pair. The page window
// applies only when both are present.
func parsePage(c *gin.Context) (*models.Page, bool) {
	pageStr := c.Query("page")
	sizeStr := c.Query("tasks_per_page")
	if pageStr == "" || sizeStr == "" {
		return nil, true
	}

	number, err := strconv.Atoi(pageStr)
	if err != nil || number < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return nil, false
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tasks_per_page"})
		return nil, false
	}

	return &models.Page{Number: number, Size: size}, true
}
