// Command mcp exposes the CRM assistant tools to MCP clients over stdio.
//
// Usage:
//
//	mcp serve --workspace <uuid>   # serve tools scoped to one workspace
//	mcp tools                      # print the tool catalogue
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/salescrm/backend/internal/application/assistant"
	reportapp "github.com/salescrm/backend/internal/application/report"
	"github.com/salescrm/backend/internal/infrastructure/cache"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"github.com/salescrm/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mcp",
		Short:        "CRM tools for MCP clients",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newToolsCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var workspace string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the CRM tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workspaceID, err := uuid.Parse(workspace)
			if err != nil {
				return fmt.Errorf("invalid workspace id %q: %w", workspace, err)
			}
			return serve(cmd.Context(), workspaceID)
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", os.Getenv("CRM_WORKSPACE_ID"), "workspace the tools are scoped to")
	return cmd
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			toolbox := assistant.NewToolbox(nil, nil, nil, nil, nil)
			for _, def := range toolbox.Definitions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", def.Name, def.Description)
			}
			return nil
		},
	}
}

func serve(ctx context.Context, workspaceID uuid.UUID) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the protocol
	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "json", Output: "stderr"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel("error")))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	dealRepo := persistence.NewGormDealRepository(db.DB)
	stageRepo := persistence.NewGormStageRepository(db.DB)
	pipelineRepo := persistence.NewGormPipelineRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)

	caches := cache.NewMemory(cfg.Report.CacheTTL)
	defer func() {
		_ = caches.Close()
	}()

	reports := reportapp.NewReportService(
		dealRepo,
		pipelineRepo,
		stageRepo,
		persistence.NewGormRevenueItemRepository(db.DB),
		persistence.NewGormTaskRepository(db.DB),
		activityRepo,
		caches.Reports,
	)
	toolbox := assistant.NewToolbox(dealRepo, stageRepo, contactRepo, activityRepo, reports)

	s := server.NewMCPServer(
		cfg.App.Name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Read-only access to one CRM workspace: deals, contacts, activities and pipeline stats."),
	)
	for _, def := range toolbox.Definitions() {
		s.AddTool(def, toolbox.Handler(workspaceID, def.Name))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("MCP server ready",
		zap.String("workspace_id", workspaceID.String()),
		zap.Int("tools", len(toolbox.Definitions())),
	)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
