package router

import (
	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler the API serves
type Handlers struct {
	System     *handler.SystemHandler
	Users      *handler.UserHandler
	Workspaces *handler.WorkspaceHandler
	Pipelines  *handler.PipelineHandler
	Deals      *handler.DealHandler
	Contacts   *handler.ContactHandler
	Tasks      *handler.TaskHandler
	Notes      *handler.NoteHandler
	Files      *handler.FileHandler
	Email      *handler.EmailHandler
	Reports    *handler.ReportHandler
	Assistant  *handler.AssistantHandler
}

// Guards are the authentication chains placed in front of route groups.
// Workspace runs in order, so authentication must come first.
type Guards struct {
	Session   []gin.HandlerFunc
	Workspace []gin.HandlerFunc
	Manager   gin.HandlerFunc
}

// SessionRoutes need a signed-in user but no workspace yet
func SessionRoutes(h Handlers, g Guards) *DomainGroup {
	session := NewDomainGroup("session", "").Use(g.Session...)

	session.Group("users", "/users").
		POST("/sync", h.Users.Sync).
		GET("/me", h.Users.Me)

	session.Group("workspaces", "/workspaces").
		GET("", h.Workspaces.ListWorkspaces).
		POST("", h.Workspaces.CreateWorkspace)

	return session
}

// WorkspaceRoutes are scoped to the workspace resolved from the API key or X-Workspace-ID
func WorkspaceRoutes(h Handlers, g Guards) *DomainGroup {
	ws := NewDomainGroup("workspace", "").Use(g.Workspace...)
	manager := g.Manager

	ws.Group("identity", "/workspace").
		GET("", h.Workspaces.GetWorkspace).
		PATCH("", manager, h.Workspaces.UpdateWorkspace).
		GET("/members", h.Workspaces.ListMembers).
		POST("/members", manager, h.Workspaces.AddMember).
		PATCH("/members/:user_id", manager, h.Workspaces.UpdateMemberRole).
		DELETE("/members/:user_id", manager, h.Workspaces.RemoveMember).
		GET("/api-keys", manager, h.Workspaces.ListAPIKeys).
		POST("/api-keys", manager, h.Workspaces.CreateAPIKey).
		DELETE("/api-keys/:id", manager, h.Workspaces.RevokeAPIKey)

	ws.Group("pipelines", "/pipelines").
		GET("", h.Pipelines.List).
		POST("", h.Pipelines.Create).
		GET("/:id", h.Pipelines.Get).
		PATCH("/:id", h.Pipelines.Update).
		DELETE("/:id", h.Pipelines.Delete).
		GET("/:id/board", h.Pipelines.Board).
		POST("/:id/stages", h.Pipelines.AddStage).
		PUT("/:id/stages/reorder", h.Pipelines.ReorderStages).
		PATCH("/:id/stages/:stage_id", h.Pipelines.UpdateStage).
		DELETE("/:id/stages/:stage_id", h.Pipelines.DeleteStage)

	ws.Group("deals", "/deals").
		GET("", h.Deals.List).
		POST("", h.Deals.Create).
		GET("/:id", h.Deals.Get).
		PATCH("/:id", h.Deals.Update).
		DELETE("/:id", h.Deals.Delete).
		POST("/:id/move", h.Deals.Move).
		GET("/:id/events", h.Deals.Events).
		GET("/:id/transcripts", h.Deals.ListTranscripts).
		POST("/:id/transcripts", h.Deals.AddTranscript).
		GET("/:id/transcripts/:transcript_id", h.Deals.GetTranscript).
		DELETE("/:id/transcripts/:transcript_id", h.Deals.DeleteTranscript).
		POST("/:id/transcripts/:transcript_id/analyze", h.Deals.AnalyzeTranscript).
		GET("/:id/revenue-items", h.Deals.ListRevenueItems).
		POST("/:id/revenue-items", h.Deals.AddRevenueItem).
		PUT("/:id/revenue-items/:item_id", h.Deals.UpdateRevenueItem).
		DELETE("/:id/revenue-items/:item_id", h.Deals.DeleteRevenueItem)

	ws.Group("contacts", "/contacts").
		GET("", h.Contacts.ListContacts).
		POST("", h.Contacts.CreateContact).
		GET("/:id", h.Contacts.GetContact).
		PATCH("/:id", h.Contacts.UpdateContact).
		DELETE("/:id", h.Contacts.DeleteContact)

	ws.Group("companies", "/companies").
		GET("", h.Contacts.ListCompanies).
		POST("", h.Contacts.CreateCompany).
		GET("/:id", h.Contacts.GetCompany).
		PUT("/:id", h.Contacts.UpdateCompany).
		DELETE("/:id", h.Contacts.DeleteCompany)

	ws.Group("tasks", "/tasks").
		GET("", h.Tasks.List).
		POST("", h.Tasks.Create).
		GET("/:id", h.Tasks.Get).
		PATCH("/:id", h.Tasks.Update).
		DELETE("/:id", h.Tasks.Delete).
		POST("/:id/complete", h.Tasks.Complete).
		POST("/:id/reopen", h.Tasks.Reopen)

	ws.Group("notes", "/notes").
		GET("", h.Notes.ListNotes).
		POST("", h.Notes.CreateNote).
		GET("/:id", h.Notes.GetNote).
		PATCH("/:id", h.Notes.UpdateNote).
		DELETE("/:id", h.Notes.DeleteNote)

	ws.Group("activities", "/activities").
		GET("", h.Notes.ListActivities).
		POST("", h.Notes.LogActivity)

	ws.Group("files", "/files").
		GET("", h.Files.List).
		POST("", h.Files.RequestUpload).
		POST("/:id/confirm", h.Files.ConfirmUpload).
		GET("/:id/download", h.Files.Download).
		DELETE("/:id", h.Files.Delete)

	ws.Group("email", "/email").
		GET("/templates", h.Email.ListTemplates).
		POST("/templates", h.Email.CreateTemplate).
		GET("/templates/:id", h.Email.GetTemplate).
		PATCH("/templates/:id", h.Email.UpdateTemplate).
		DELETE("/templates/:id", h.Email.DeleteTemplate).
		POST("/send", h.Email.Send).
		GET("/logs", h.Email.ListLogs).
		GET("/logs/:id", h.Email.GetLog)

	ws.Group("reports", "/reports").
		GET("/dashboard", h.Reports.Dashboard).
		GET("/pipeline/:id", h.Reports.Pipeline).
		GET("/revenue-by-owner", h.Reports.RevenueByOwner).
		GET("/revenue-by-month", h.Reports.RevenueByMonth).
		GET("/forecast", h.Reports.Forecast).
		GET("/activities", h.Reports.Activities).
		GET("/revenue-items", h.Reports.RevenueItems)

	ws.Group("assistant", "/assistant").
		POST("/chat", h.Assistant.Chat)

	return ws
}
