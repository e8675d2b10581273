package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/salescrm/backend/internal/application/sales"
)

// DealHandler serves deals and their moves, history, transcripts and revenue items
type DealHandler struct {
	BaseHandler
	deals       *salesapp.DealService
	transcripts *salesapp.TranscriptService
	revenue     *salesapp.RevenueItemService
}

// NewDealHandler creates a DealHandler
func NewDealHandler(deals *salesapp.DealService, transcripts *salesapp.TranscriptService, revenue *salesapp.RevenueItemService) *DealHandler {
	return &DealHandler{deals: deals, transcripts: transcripts, revenue: revenue}
}

// Create godoc
// @ID           createDeal
// @Summary      Create a deal
// @Description  Pipeline defaults to the workspace default, stage to its first stage
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateDealRequest true "Deal"
// @Success      201 {object} APIResponse[salesapp.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req salesapp.CreateDealRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ActorID = h.Actor(c)
	deal, err := h.deals.CreateDeal(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, deal)
}

// List godoc
// @ID           listDeals
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Param        search       query string false "Search in title"
// @Param        pipeline_id  query string false "Pipeline ID"
// @Param        stage_id     query string false "Stage ID"
// @Param        owner_id     query string false "Owner ID"
// @Param        contact_id   query string false "Contact ID"
// @Param        company_id   query string false "Company ID"
// @Param        status       query string false "open, won or lost"
// @Param        page         query int    false "Page"
// @Param        page_size    query int    false "Page size"
// @Param        order_by     query string false "Order by"
// @Param        order_dir    query string false "asc or desc"
// @Success      200 {object} APIResponse[[]salesapp.DealResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter salesapp.DealListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.deals.ListDeals(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @ID           getDeal
// @Summary      Get a deal
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[salesapp.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id} [get]
func (h *DealHandler) Get(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	deal, err := h.deals.GetDeal(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deal)
}

// Update godoc
// @ID           updateDeal
// @Summary      Update a deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body salesapp.UpdateDealRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id} [patch]
func (h *DealHandler) Update(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateDealRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ActorID = h.Actor(c)
	deal, err := h.deals.UpdateDeal(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deal)
}

// Delete godoc
// @ID           deleteDeal
// @Summary      Delete a deal
// @Tags         deals
// @Param        id path string true "Deal ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id} [delete]
func (h *DealHandler) Delete(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.deals.DeleteDeal(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Move godoc
// @ID           moveDeal
// @Summary      Move a deal to another stage
// @Description  Won and lost stages close the deal; open stages reopen it
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body salesapp.MoveDealRequest true "Destination"
// @Success      200 {object} APIResponse[salesapp.MoveDealResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/move [post]
func (h *DealHandler) Move(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.MoveDealRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ActorID = h.Actor(c)
	result, err := h.deals.MoveDeal(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Events godoc
// @ID           listDealEvents
// @Summary      Deal history
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[[]salesapp.DealEventResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/events [get]
func (h *DealHandler) Events(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	events, err := h.deals.ListDealEvents(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// AddTranscript godoc
// @ID           addTranscript
// @Summary      Attach a call or meeting transcript
// @Tags         transcripts
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body salesapp.AddTranscriptRequest true "Transcript"
// @Success      201 {object} APIResponse[salesapp.TranscriptResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/transcripts [post]
func (h *DealHandler) AddTranscript(c *gin.Context) {
	wsID, dealID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.AddTranscriptRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = h.Actor(c)
	t, err := h.transcripts.AddTranscript(c.Request.Context(), wsID, dealID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// ListTranscripts godoc
// @ID           listTranscripts
// @Summary      List a deal's transcripts
// @Tags         transcripts
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[[]salesapp.TranscriptResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/transcripts [get]
func (h *DealHandler) ListTranscripts(c *gin.Context) {
	wsID, dealID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	list, err := h.transcripts.ListTranscripts(c.Request.Context(), wsID, dealID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetTranscript godoc
// @ID           getTranscript
// @Summary      Get a transcript
// @Tags         transcripts
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        transcript_id path string true "Transcript ID"
// @Success      200 {object} APIResponse[salesapp.TranscriptResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/transcripts/{transcript_id} [get]
func (h *DealHandler) GetTranscript(c *gin.Context) {
	wsID, dealID, transcriptID, ok := h.dealChild(c, "transcript_id")
	if !ok {
		return
	}
	t, err := h.transcripts.GetTranscript(c.Request.Context(), wsID, dealID, transcriptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// DeleteTranscript godoc
// @ID           deleteTranscript
// @Summary      Delete a transcript
// @Tags         transcripts
// @Param        id path string true "Deal ID"
// @Param        transcript_id path string true "Transcript ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/transcripts/{transcript_id} [delete]
func (h *DealHandler) DeleteTranscript(c *gin.Context) {
	wsID, dealID, transcriptID, ok := h.dealChild(c, "transcript_id")
	if !ok {
		return
	}
	if err := h.transcripts.DeleteTranscript(c.Request.Context(), wsID, dealID, transcriptID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AnalyzeTranscript godoc
// @ID           analyzeTranscript
// @Summary      Summarize a transcript with the assistant
// @Tags         transcripts
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        transcript_id path string true "Transcript ID"
// @Success      200 {object} APIResponse[salesapp.AnalyzeTranscriptResponse]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/transcripts/{transcript_id}/analyze [post]
func (h *DealHandler) AnalyzeTranscript(c *gin.Context) {
	wsID, dealID, transcriptID, ok := h.dealChild(c, "transcript_id")
	if !ok {
		return
	}
	result, err := h.transcripts.AnalyzeTranscript(c.Request.Context(), wsID, dealID, transcriptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AddRevenueItem godoc
// @ID           addRevenueItem
// @Summary      Add a revenue line
// @Description  The deal value becomes the sum of quantity times unit price
// @Tags         revenue-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body salesapp.RevenueItemRequest true "Revenue item"
// @Success      201 {object} APIResponse[salesapp.RevenueItemResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/revenue-items [post]
func (h *DealHandler) AddRevenueItem(c *gin.Context) {
	wsID, dealID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req salesapp.RevenueItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ActorID = h.Actor(c)
	item, err := h.revenue.AddRevenueItem(c.Request.Context(), wsID, dealID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListRevenueItems godoc
// @ID           listRevenueItems
// @Summary      List a deal's revenue lines with totals
// @Tags         revenue-items
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[salesapp.RevenueItemsResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/revenue-items [get]
func (h *DealHandler) ListRevenueItems(c *gin.Context) {
	wsID, dealID, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	items, err := h.revenue.ListRevenueItems(c.Request.Context(), wsID, dealID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// UpdateRevenueItem godoc
// @ID           updateRevenueItem
// @Summary      Update a revenue line
// @Tags         revenue-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        item_id path string true "Revenue item ID"
// @Param        request body salesapp.RevenueItemRequest true "Revenue item"
// @Success      200 {object} APIResponse[salesapp.RevenueItemResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/revenue-items/{item_id} [put]
func (h *DealHandler) UpdateRevenueItem(c *gin.Context) {
	wsID, dealID, itemID, ok := h.dealChild(c, "item_id")
	if !ok {
		return
	}
	var req salesapp.RevenueItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ActorID = h.Actor(c)
	item, err := h.revenue.UpdateRevenueItem(c.Request.Context(), wsID, dealID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteRevenueItem godoc
// @ID           deleteRevenueItem
// @Summary      Delete a revenue line
// @Tags         revenue-items
// @Param        id path string true "Deal ID"
// @Param        item_id path string true "Revenue item ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /deals/{id}/revenue-items/{item_id} [delete]
func (h *DealHandler) DeleteRevenueItem(c *gin.Context) {
	wsID, dealID, itemID, ok := h.dealChild(c, "item_id")
	if !ok {
		return
	}
	if err := h.revenue.DeleteRevenueItem(c.Request.Context(), wsID, dealID, itemID, h.Actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *DealHandler) dealChild(c *gin.Context, child string) (wsID, dealID, childID uuid.UUID, ok bool) {
	if wsID, dealID, ok = h.ScopedID(c, "id"); !ok {
		return
	}
	childID, ok = h.ParamID(c, child)
	return
}
