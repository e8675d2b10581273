package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/salescrm/backend/internal/application/sales"
)

// PipelineHandler serves pipelines, stages and the kanban board
type PipelineHandler struct {
	BaseHandler
	pipelines *salesapp.PipelineService
}

// NewPipelineHandler creates a PipelineHandler
func NewPipelineHandler(pipelines *salesapp.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelines: pipelines}
}

// Create godoc
// @ID           createPipeline
// @Summary      Create a pipeline
// @Description  Stages default to the standard sales stages when none are given
// @Tags         pipelines
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreatePipelineRequest true "Pipeline"
// @Success      201 {object} APIResponse[salesapp.PipelineResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines [post]
func (h *PipelineHandler) Create(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req salesapp.CreatePipelineRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.pipelines.CreatePipeline(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List godoc
// @ID           listPipelines
// @Summary      List pipelines with their stages
// @Tags         pipelines
// @Produce      json
// @Success      200 {object} APIResponse[[]salesapp.PipelineResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines [get]
func (h *PipelineHandler) List(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	list, err := h.pipelines.ListPipelines(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Get godoc
// @ID           getPipeline
// @Summary      Get a pipeline
// @Tags         pipelines
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Success      200 {object} APIResponse[salesapp.PipelineResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id} [get]
func (h *PipelineHandler) Get(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	p, err := h.pipelines.GetPipeline(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update godoc
// @ID           updatePipeline
// @Summary      Rename a pipeline or make it the default
// @Tags         pipelines
// @Accept       json
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Param        request body salesapp.UpdatePipelineRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.PipelineResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id} [patch]
func (h *PipelineHandler) Update(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdatePipelineRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.pipelines.UpdatePipeline(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @ID           deletePipeline
// @Summary      Delete a pipeline
// @Description  Refused for the default pipeline and while deals exist in it
// @Tags         pipelines
// @Param        id path string true "Pipeline ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id} [delete]
func (h *PipelineHandler) Delete(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.pipelines.DeletePipeline(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddStage godoc
// @ID           addStage
// @Summary      Append a stage
// @Tags         pipelines
// @Accept       json
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Param        request body salesapp.StageInput true "Stage"
// @Success      201 {object} APIResponse[salesapp.StageResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id}/stages [post]
func (h *PipelineHandler) AddStage(c *gin.Context) {
	wsID, pipelineID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.StageInput
	if !h.BindJSON(c, &req) {
		return
	}
	stage, err := h.pipelines.AddStage(c.Request.Context(), wsID, pipelineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, stage)
}

// UpdateStage godoc
// @ID           updateStage
// @Summary      Update a stage
// @Tags         pipelines
// @Accept       json
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Param        stage_id path string true "Stage ID"
// @Param        request body salesapp.UpdateStageRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.StageResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id}/stages/{stage_id} [patch]
func (h *PipelineHandler) UpdateStage(c *gin.Context) {
	wsID, pipelineID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	stageID, ok := h.ParamID(c, "stage_id")
	if !ok {
		return
	}
	var req salesapp.UpdateStageRequest
	if !h.BindJSON(c, &req) {
		return
	}
	stage, err := h.pipelines.UpdateStage(c.Request.Context(), wsID, pipelineID, stageID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stage)
}

// DeleteStage godoc
// @ID           deleteStage
// @Summary      Delete a stage
// @Description  Refused while deals sit in the stage
// @Tags         pipelines
// @Param        id path string true "Pipeline ID"
// @Param        stage_id path string true "Stage ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id}/stages/{stage_id} [delete]
func (h *PipelineHandler) DeleteStage(c *gin.Context) {
	wsID, pipelineID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	stageID, ok := h.ParamID(c, "stage_id")
	if !ok {
		return
	}
	if err := h.pipelines.DeleteStage(c.Request.Context(), wsID, pipelineID, stageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReorderStages godoc
// @ID           reorderStages
// @Summary      Reorder stages
// @Tags         pipelines
// @Accept       json
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Param        request body salesapp.ReorderStagesRequest true "Positions"
// @Success      200 {object} APIResponse[salesapp.PipelineResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id}/stages/reorder [put]
func (h *PipelineHandler) ReorderStages(c *gin.Context) {
	wsID, pipelineID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.ReorderStagesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.pipelines.ReorderStages(c.Request.Context(), wsID, pipelineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Board godoc
// @ID           getPipelineBoard
// @Summary      Kanban board
// @Description  Stages in order, each with its deals, count and total value
// @Tags         pipelines
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Success      200 {object} APIResponse[salesapp.BoardResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /pipelines/{id}/board [get]
func (h *PipelineHandler) Board(c *gin.Context) {
	wsID, pipelineID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	board, err := h.pipelines.GetBoard(c.Request.Context(), wsID, pipelineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, board)
}
