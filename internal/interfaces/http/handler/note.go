package handler

import (
	"github.com/gin-gonic/gin"
	engagementapp "github.com/salescrm/backend/internal/application/engagement"
)

// NoteHandler serves notes and the activity timeline
type NoteHandler struct {
	BaseHandler
	notes      *engagementapp.NoteService
	activities *engagementapp.ActivityService
}

// NewNoteHandler creates a NoteHandler
func NewNoteHandler(notes *engagementapp.NoteService, activities *engagementapp.ActivityService) *NoteHandler {
	return &NoteHandler{notes: notes, activities: activities}
}

// CreateNote godoc
// @ID           createNote
// @Summary      Create a note on a deal, contact or company
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.CreateNoteRequest true "Note"
// @Success      201 {object} APIResponse[engagementapp.NoteResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req engagementapp.CreateNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.AuthorID = h.Actor(c)
	note, err := h.notes.CreateNote(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// ListNotes godoc
// @ID           listNotes
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Param        deal_id    query string false "Deal ID"
// @Param        contact_id query string false "Contact ID"
// @Param        company_id query string false "Company ID"
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} APIResponse[[]engagementapp.NoteResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter engagementapp.NoteListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.notes.ListNotes(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetNote godoc
// @ID           getNote
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Param        id path string true "Note ID"
// @Success      200 {object} APIResponse[engagementapp.NoteResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	note, err := h.notes.GetNote(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// UpdateNote godoc
// @ID           updateNote
// @Summary      Edit a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id path string true "Note ID"
// @Param        request body engagementapp.UpdateNoteRequest true "Content"
// @Success      200 {object} APIResponse[engagementapp.NoteResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /notes/{id} [patch]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req engagementapp.UpdateNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	note, err := h.notes.UpdateNote(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// DeleteNote godoc
// @ID           deleteNote
// @Summary      Delete a note
// @Tags         notes
// @Param        id path string true "Note ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LogActivity godoc
// @ID           logActivity
// @Summary      Log a call, meeting or other activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.LogActivityRequest true "Activity"
// @Success      201 {object} APIResponse[engagementapp.ActivityResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /activities [post]
func (h *NoteHandler) LogActivity(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req engagementapp.LogActivityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.UserID = h.Actor(c)
	activity, err := h.activities.LogActivity(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, activity)
}

// ListActivities godoc
// @ID           listActivities
// @Summary      Activity timeline, newest first
// @Tags         activities
// @Produce      json
// @Param        type       query string false "Activity type"
// @Param        deal_id    query string false "Deal ID"
// @Param        contact_id query string false "Contact ID"
// @Param        company_id query string false "Company ID"
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} APIResponse[[]engagementapp.ActivityResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /activities [get]
func (h *NoteHandler) ListActivities(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter engagementapp.ActivityListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.activities.ListActivities(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}
