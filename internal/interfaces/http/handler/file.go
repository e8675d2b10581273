package handler

import (
	"github.com/gin-gonic/gin"
	engagementapp "github.com/salescrm/backend/internal/application/engagement"
)

// FileHandler serves attachments stored in object storage
type FileHandler struct {
	BaseHandler
	files *engagementapp.FileService
}

// NewFileHandler creates a FileHandler
func NewFileHandler(files *engagementapp.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// RequestUpload godoc
// @ID           requestFileUpload
// @Summary      Start an upload
// @Description  Creates a pending file and returns a presigned PUT URL. Call confirm after uploading.
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.RequestUploadRequest true "File"
// @Success      201 {object} APIResponse[engagementapp.UploadResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /files [post]
func (h *FileHandler) RequestUpload(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req engagementapp.RequestUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.UploadedBy = h.Actor(c)
	upload, err := h.files.RequestUpload(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, upload)
}

// ConfirmUpload godoc
// @ID           confirmFileUpload
// @Summary      Confirm an upload finished
// @Tags         files
// @Produce      json
// @Param        id path string true "File ID"
// @Success      200 {object} APIResponse[engagementapp.FileResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /files/{id}/confirm [post]
func (h *FileHandler) ConfirmUpload(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	file, err := h.files.ConfirmUpload(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, file)
}

// Download godoc
// @ID           downloadFile
// @Summary      Presigned download URL
// @Tags         files
// @Produce      json
// @Param        id path string true "File ID"
// @Success      200 {object} APIResponse[engagementapp.DownloadResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /files/{id}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	download, err := h.files.GetDownloadURL(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, download)
}

// List godoc
// @ID           listFiles
// @Summary      List files
// @Tags         files
// @Produce      json
// @Param        deal_id    query string false "Deal ID"
// @Param        contact_id query string false "Contact ID"
// @Param        company_id query string false "Company ID"
// @Success      200 {object} APIResponse[[]engagementapp.FileResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /files [get]
func (h *FileHandler) List(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter engagementapp.FileListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.files.ListFiles(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Delete godoc
// @ID           deleteFile
// @Summary      Delete a file and its stored object
// @Tags         files
// @Param        id path string true "File ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.files.DeleteFile(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
