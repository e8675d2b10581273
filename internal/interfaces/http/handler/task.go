package handler

import (
	"github.com/gin-gonic/gin"
	engagementapp "github.com/salescrm/backend/internal/application/engagement"
)

// TaskHandler serves follow-up tasks
type TaskHandler struct {
	BaseHandler
	tasks *engagementapp.TaskService
}

// NewTaskHandler creates a TaskHandler
func NewTaskHandler(tasks *engagementapp.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create godoc
// @ID           createTask
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.CreateTaskRequest true "Task"
// @Success      201 {object} APIResponse[engagementapp.TaskResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req engagementapp.CreateTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	task, err := h.tasks.CreateTask(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, task)
}

// List godoc
// @ID           listTasks
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        status      query string false "todo, in_progress or done"
// @Param        priority    query string false "low, medium or high"
// @Param        assignee_id query string false "Assignee ID"
// @Param        deal_id     query string false "Deal ID"
// @Param        contact_id  query string false "Contact ID"
// @Param        overdue     query bool   false "Only open tasks past their due date"
// @Param        page        query int    false "Page"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} APIResponse[[]engagementapp.TaskResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter engagementapp.TaskListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.tasks.ListTasks(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @ID           getTask
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} APIResponse[engagementapp.TaskResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.GetTask(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Update godoc
// @ID           updateTask
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body engagementapp.UpdateTaskRequest true "Changes"
// @Success      200 {object} APIResponse[engagementapp.TaskResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req engagementapp.UpdateTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	task, err := h.tasks.UpdateTask(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Complete godoc
// @ID           completeTask
// @Summary      Mark a task done
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} APIResponse[engagementapp.TaskResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.CompleteTask(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Reopen godoc
// @ID           reopenTask
// @Summary      Reopen a completed task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} APIResponse[engagementapp.TaskResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks/{id}/reopen [post]
func (h *TaskHandler) Reopen(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.ReopenTask(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Delete godoc
// @ID           deleteTask
// @Summary      Delete a task
// @Tags         tasks
// @Param        id path string true "Task ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
