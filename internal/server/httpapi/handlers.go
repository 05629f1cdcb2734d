package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/dmitrijs2005/tasktracker/internal/server/wire"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrInvalidUser, err))
		return
	}

	token, user, err := s.users.Register(c.Request.Context(), services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.RegisterResponse{Token: token, User: wire.User(user)})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrInvalidUser, err))
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.LoginResponse{Token: token})
}

func (s *HTTPServer) currentUser(c *gin.Context) {
	user, err := s.users.CurrentUser(c.Request.Context(), callerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.User(user))
}

func (s *HTTPServer) listTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), callerID(c), nil)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Tasks(tasks))
}

func (s *HTTPServer) filterTasks(c *gin.Context) {
	req := api.FilterTasksRequest{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
	var err error
	if req.StartDate, err = wire.ParseDate(c.Query("startDate")); err != nil {
		s.abortWithError(c, err)
		return
	}
	if req.EndDate, err = wire.ParseDate(c.Query("endDate")); err != nil {
		s.abortWithError(c, err)
		return
	}

	filter, err := wire.Filter(&req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	tasks, err := s.tasks.List(c.Request.Context(), callerID(c), filter)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Tasks(tasks))
}

func (s *HTTPServer) searchTasks(c *gin.Context) {
	tasks, err := s.tasks.Search(c.Request.Context(), callerID(c), c.Query("query"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Tasks(tasks))
}

func (s *HTTPServer) taskStats(c *gin.Context) {
	at, err := wire.ParseDate(c.Query("at"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	stats, err := s.tasks.Stats(c.Request.Context(), callerID(c), at)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Stats(stats))
}

func (s *HTTPServer) exportTasks(c *gin.Context) {
	url, err := s.exports.Export(c.Request.Context(), callerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ExportResponse{URL: url})
}

func (s *HTTPServer) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Task(task))
}

func (s *HTTPServer) createTask(c *gin.Context) {
	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrInvalidTask, err))
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), callerID(c), wire.CreateInput(&req))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Task(task))
}

func (s *HTTPServer) updateTask(c *gin.Context) {
	var req api.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrInvalidTask, err))
		return
	}
	req.ID = c.Param("id")

	task, err := s.tasks.Update(c.Request.Context(), callerID(c), req.ID, wire.Patch(&req))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Task(task))
}

func (s *HTTPServer) deleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DeleteTaskResponse{Msg: "Task removed"})
}
