package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taskHandler handles the ordered task list of a project board.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

func registerTaskRoutes(rg *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := &taskHandler{taskService: taskService}

	tasks := rg.Group("/projects/:projectID/tasks")
	{
		tasks.GET("", h.listTasks)
		tasks.POST("", h.createTask)
		tasks.POST("/move", h.moveTask)
		tasks.PATCH("/:taskID", h.updateTask)
		tasks.DELETE("/:taskID", h.deleteTask)
	}
}

func (h *taskHandler) listTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, logger, err, "list tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTaskResponse(tasks))
}

func (h *taskHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaskRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), c.Param("projectID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "create task")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

func (h *taskHandler) updateTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTaskRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "update task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

func (h *taskHandler) deleteTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), userID); err != nil {
		respondError(c, logger, err, "delete task")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *taskHandler) moveTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	var req dto.MoveItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	tasks, err := h.taskService.MoveTask(c.Request.Context(), projectID, req, userID)
	if errors.Is(err, apperrors.ErrReorderFailed) {
		respondReorderFailed(c, logger, err, func() (any, error) {
			reloaded, lerr := h.taskService.ListTasks(c.Request.Context(), projectID)
			return dto.ToListTaskResponse(reloaded), lerr
		})
		return
	}
	if err != nil {
		respondError(c, logger, err, "move task")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTaskResponse(tasks))
}

// expenseHandler handles the ordered expenses of an expense sheet.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseService: expenseService}

	expenses := rg.Group("/sheets/:sheetID/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.POST("/move", h.moveExpense)
		expenses.PATCH("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("sheetID"))
	if err != nil {
		respondError(c, logger, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("sheetID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("sheetID"), c.Param("expenseID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("sheetID"), c.Param("expenseID"), userID); err != nil {
		respondError(c, logger, err, "delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *expenseHandler) moveExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sheetID := c.Param("sheetID")
	var req dto.MoveItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expenses, err := h.expenseService.MoveExpense(c.Request.Context(), sheetID, req, userID)
	if errors.Is(err, apperrors.ErrReorderFailed) {
		respondReorderFailed(c, logger, err, func() (any, error) {
			reloaded, lerr := h.expenseService.ListExpenses(c.Request.Context(), sheetID)
			return dto.ToListExpenseResponse(reloaded), lerr
		})
		return
	}
	if err != nil {
		respondError(c, logger, err, "move expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}
