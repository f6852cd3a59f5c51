package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

type Server struct {
	tasks  *tasklist.Guarded
	logger *log.Logger
	router *gin.Engine
	server *http.Server
}

type taskRequest struct {
	Text string `json:"text"`
}

func NewServer(tasks *tasklist.Guarded, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		tasks:  tasks,
		logger: logger,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())

	api := s.router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/stats", s.handleStats)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Info("web api listening", "addr", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}

func (s *Server) handleListTasks(c *gin.Context) {
	filter, err := models.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := s.tasks.List(filter)
	s.respond(c, http.StatusOK, tasks, err)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Add(req.Text)
	s.respond(c, http.StatusCreated, task, err)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Edit(id, req.Text)
	s.respond(c, http.StatusOK, task, err)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}

	task, err := s.tasks.Toggle(id)
	s.respond(c, http.StatusOK, task, err)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(id); err != nil {
		s.respond(c, 0, nil, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.tasks.Stats())
}

func (s *Server) taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (s *Server) respond(c *gin.Context, status int, data any, err error) {
	switch {
	case err == nil:
		c.JSON(status, data)
	case errors.Is(err, tasklist.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tasklist.ErrEmptyText), errors.Is(err, tasklist.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
