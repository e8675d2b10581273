package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/salescrm/backend/internal/application/report"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Tool names
const (
	ToolSearchDeals    = "search_deals"
	ToolGetStats       = "get_stats"
	ToolSearchContacts = "search_contacts"
	ToolGetActivities  = "get_activities"
)

const (
	defaultToolLimit = 10
	maxToolLimit     = 50
)

// StatsProvider supplies the dashboard numbers behind get_stats
type StatsProvider interface {
	Dashboard(ctx context.Context, workspaceID uuid.UUID) (*report.DashboardResponse, error)
}

// ToolHandler runs one tool for a workspace
type ToolHandler func(ctx context.Context, workspaceID uuid.UUID, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

type toolEntry struct {
	def    mcp.Tool
	handle ToolHandler
}

// Toolbox is the read-only tool catalogue shared by the chat loop and the MCP server
type Toolbox struct {
	deals      sales.DealRepository
	stages     sales.StageRepository
	contacts   contact.ContactRepository
	activities engagement.ActivityRepository
	stats      StatsProvider

	tools map[string]toolEntry
	order []string
}

// NewToolbox creates the catalogue
func NewToolbox(
	deals sales.DealRepository,
	stages sales.StageRepository,
	contacts contact.ContactRepository,
	activities engagement.ActivityRepository,
	stats StatsProvider,
) *Toolbox {
	t := &Toolbox{
		deals:      deals,
		stages:     stages,
		contacts:   contacts,
		activities: activities,
		stats:      stats,
		tools:      make(map[string]toolEntry),
	}
	t.register(searchDealsDefinition(), t.searchDeals)
	t.register(getStatsDefinition(), t.getStats)
	t.register(searchContactsDefinition(), t.searchContacts)
	t.register(getActivitiesDefinition(), t.getActivities)
	return t
}

func (t *Toolbox) register(def mcp.Tool, handle ToolHandler) {
	t.tools[def.Name] = toolEntry{def: def, handle: handle}
	t.order = append(t.order, def.Name)
}

// Definitions returns the MCP tool definitions in registration order
func (t *Toolbox) Definitions() []mcp.Tool {
	defs := make([]mcp.Tool, 0, len(t.order))
	for _, name := range t.order {
		defs = append(defs, t.tools[name].def)
	}
	return defs
}

// Specs returns the definitions in the shape sent to the model
func (t *Toolbox) Specs() ([]ToolSpec, error) {
	specs := make([]ToolSpec, 0, len(t.order))
	for _, def := range t.Definitions() {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal %s schema: %w", def.Name, err)
		}
		specs = append(specs, ToolSpec{Name: def.Name, Description: def.Description, InputSchema: schema})
	}
	return specs, nil
}

// Has reports whether a tool exists
func (t *Toolbox) Has(name string) bool {
	_, ok := t.tools[name]
	return ok
}

// Handler binds a tool to a workspace, in the signature the MCP server expects
func (t *Toolbox) Handler(workspaceID uuid.UUID, name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, ok := t.tools[name]
		if !ok {
			return mcp.NewToolResultError("unknown tool: " + name), nil
		}
		return entry.handle(ctx, workspaceID, req)
	}
}

// Call runs a tool with raw JSON input and returns its text and whether it failed.
// Unknown tools and bad input come back as error results, never as Go errors.
func (t *Toolbox) Call(ctx context.Context, workspaceID uuid.UUID, name string, input json.RawMessage) (string, bool) {
	entry, ok := t.tools[name]
	if !ok {
		return "unknown tool: " + name, true
	}
	args := map[string]any{}
	if len(input) > 0 && string(input) != "null" {
		if err := json.Unmarshal(input, &args); err != nil {
			return "tool input must be a JSON object", true
		}
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := entry.handle(ctx, workspaceID, req)
	if err != nil {
		return err.Error(), true
	}
	return resultText(result), result.IsError
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func searchDealsDefinition() mcp.Tool {
	return mcp.NewTool(ToolSearchDeals,
		mcp.WithDescription("Search deals in the workspace by title, status or stage name. Returns title, status, stage, value and id."),
		mcp.WithString("query", mcp.Description("Text matched against deal titles")),
		mcp.WithString("status", mcp.Description("Filter by status"), mcp.Enum("open", "won", "lost")),
		mcp.WithString("stage", mcp.Description("Filter by stage name, e.g. Proposal")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 10, max: 50)")),
	)
}

func getStatsDefinition() mcp.Tool {
	return mcp.NewTool(ToolGetStats,
		mcp.WithDescription("Headline numbers: open, won and lost deals with values, win rate, average won deal, tasks due today and overdue."),
	)
}

func searchContactsDefinition() mcp.Tool {
	return mcp.NewTool(ToolSearchContacts,
		mcp.WithDescription("Search contacts by name or email."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Name or email fragment")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 10, max: 50)")),
	)
}

func getActivitiesDefinition() mcp.Tool {
	return mcp.NewTool(ToolGetActivities,
		mcp.WithDescription("Recent timeline activities, newest first, optionally for one deal or contact."),
		mcp.WithString("deal_id", mcp.Description("Only activities of this deal (UUID)")),
		mcp.WithString("contact_id", mcp.Description("Only activities of this contact (UUID)")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 10, max: 50)")),
	)
}

func (t *Toolbox) searchDeals(ctx context.Context, workspaceID uuid.UUID, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := limitArg(req)
	status := strings.ToLower(req.GetString("status", ""))
	if status != "" && !sales.DealStatus(status).IsValid() {
		return mcp.NewToolResultError("status must be open, won or lost"), nil
	}

	stages, err := t.stages.FindAllForWorkspace(ctx, workspaceID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading stages failed: %v", err)), nil
	}
	stageNames := make(map[uuid.UUID]string, len(stages))
	for _, s := range stages {
		stageNames[s.ID] = s.Name
	}

	filter := shared.NewFilter(1, limit, "updated_at", "desc", req.GetString("query", ""))
	var wanted map[uuid.UUID]struct{}
	if stage := strings.TrimSpace(req.GetString("stage", "")); stage != "" {
		wanted = make(map[uuid.UUID]struct{})
		for _, s := range stages {
			if strings.EqualFold(s.Name, stage) {
				wanted[s.ID] = struct{}{}
			}
		}
		if len(wanted) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No stage named %q exists.", stage)), nil
		}
		// stage names repeat across pipelines, so filter after loading
		filter.Page, filter.PageSize = 0, 0
	}
	if status != "" {
		filter.Filters["status"] = status
	}

	deals, err := t.deals.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if wanted != nil {
		matched := deals[:0]
		for _, d := range deals {
			if _, ok := wanted[d.StageID]; ok {
				matched = append(matched, d)
			}
		}
		deals = matched
		if len(deals) > limit {
			deals = deals[:limit]
		}
	}
	if len(deals) == 0 {
		return mcp.NewToolResultText("No deals found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d deals:\n\n", len(deals))
	for i, d := range deals {
		fmt.Fprintf(&b, "[%d] %s | %s | stage: %s | %s %s | id: %s",
			i+1, d.Title, d.Status, stageNames[d.StageID], d.Value.StringFixed(2), d.Currency, d.ID)
		if d.ExpectedCloseDate != nil {
			fmt.Fprintf(&b, " | expected close: %s", d.ExpectedCloseDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *Toolbox) getStats(ctx context.Context, workspaceID uuid.UUID, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := t.stats.Dashboard(ctx, workspaceID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Open deals: %d (value %s)\n", d.OpenDeals, d.OpenValue.StringFixed(2))
	fmt.Fprintf(&b, "Won deals: %d (value %s)\n", d.WonDeals, d.WonValue.StringFixed(2))
	fmt.Fprintf(&b, "Lost deals: %d\n", d.LostDeals)
	fmt.Fprintf(&b, "Win rate: %.1f%%\n", d.WinRate*100)
	fmt.Fprintf(&b, "Average won deal: %s\n", d.AverageWonDeal.StringFixed(2))
	fmt.Fprintf(&b, "Tasks due today: %d\n", d.TasksDueToday)
	fmt.Fprintf(&b, "Tasks overdue: %d\n", d.TasksOverdue)
	return mcp.NewToolResultText(b.String()), nil
}

func (t *Toolbox) searchContacts(ctx context.Context, workspaceID uuid.UUID, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	filter := shared.NewFilter(1, limitArg(req), "", "", query)
	contacts, err := t.contacts.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(contacts) == 0 {
		return mcp.NewToolResultText("No contacts found matching your query."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contacts:\n\n", len(contacts))
	for i, c := range contacts {
		fmt.Fprintf(&b, "[%d] %s", i+1, c.FullName())
		if c.JobTitle != "" {
			fmt.Fprintf(&b, " (%s)", c.JobTitle)
		}
		if c.Email != "" {
			fmt.Fprintf(&b, " | %s", c.Email)
		}
		if c.Phone != "" {
			fmt.Fprintf(&b, " | %s", c.Phone)
		}
		if tags := c.TagList(); len(tags) > 0 {
			sort.Strings(tags)
			fmt.Fprintf(&b, " | tags: %s", strings.Join(tags, ", "))
		}
		fmt.Fprintf(&b, " | id: %s\n", c.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *Toolbox) getActivities(ctx context.Context, workspaceID uuid.UUID, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := shared.NewFilter(1, limitArg(req), "occurred_at", "desc", "")
	for _, key := range []string{"deal_id", "contact_id"} {
		raw := strings.TrimSpace(req.GetString(key, ""))
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'%s' must be a UUID", key)), nil
		}
		filter.Filters[key] = id
	}

	activities, err := t.activities.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading activities failed: %v", err)), nil
	}
	if len(activities) == 0 {
		return mcp.NewToolResultText("No activities found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d activities:\n\n", len(activities))
	for i, a := range activities {
		fmt.Fprintf(&b, "[%d] %s | %s | %s", i+1, a.OccurredAt.UTC().Format("2006-01-02 15:04"), a.Type, a.Subject)
		if a.Description != "" {
			fmt.Fprintf(&b, "\n    %s", truncate(a.Description, 200))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func limitArg(req mcp.CallToolRequest) int {
	v, ok := req.GetArguments()["limit"].(float64)
	if !ok || v < 1 {
		return defaultToolLimit
	}
	if v > maxToolLimit {
		return maxToolLimit
	}
	return int(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
