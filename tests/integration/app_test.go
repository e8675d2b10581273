package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/application/assistant"
	contactapp "github.com/salescrm/backend/internal/application/contact"
	emailapp "github.com/salescrm/backend/internal/application/email"
	engagementapp "github.com/salescrm/backend/internal/application/engagement"
	identityapp "github.com/salescrm/backend/internal/application/identity"
	reportapp "github.com/salescrm/backend/internal/application/report"
	salesapp "github.com/salescrm/backend/internal/application/sales"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/infrastructure/auth"
	"github.com/salescrm/backend/internal/infrastructure/cache"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"github.com/salescrm/backend/internal/infrastructure/event"
	"github.com/salescrm/backend/internal/infrastructure/mail"
	"github.com/salescrm/backend/internal/infrastructure/persistence"
	"github.com/salescrm/backend/internal/infrastructure/persistence/workspace"
	"github.com/salescrm/backend/internal/infrastructure/queue"
	"github.com/salescrm/backend/internal/infrastructure/storage"
	"github.com/salescrm/backend/internal/interfaces/http/handler"
	"github.com/salescrm/backend/internal/interfaces/http/middleware"
	"github.com/salescrm/backend/internal/interfaces/http/router"
	"github.com/salescrm/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const api = "/api/v1"

type testApp struct {
	db       *TestDB
	handler  http.Handler
	sessions *auth.SessionValidator
	events   *testutil.MockEventHandler
	client   *testutil.Client
}

// newTestApp wires the HTTP stack against the test database. Events are delivered synchronously.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tdb := NewTestDB(t)
	require.NoError(t, workspace.Register(tdb.DB, false))
	log := zap.NewNop()

	caches := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = caches.Close() })

	workspaceRepo := persistence.NewGormWorkspaceRepository(tdb.DB)
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	memberRepo := persistence.NewGormMemberRepository(tdb.DB)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(tdb.DB)
	pipelineRepo := persistence.NewGormPipelineRepository(tdb.DB)
	stageRepo := persistence.NewGormStageRepository(tdb.DB)
	dealRepo := persistence.NewGormDealRepository(tdb.DB)
	revenueItemRepo := persistence.NewGormRevenueItemRepository(tdb.DB)
	contactRepo := persistence.NewGormContactRepository(tdb.DB)
	companyRepo := persistence.NewGormCompanyRepository(tdb.DB)
	taskRepo := persistence.NewGormTaskRepository(tdb.DB)
	activityRepo := persistence.NewGormActivityRepository(tdb.DB)
	emailLogRepo := persistence.NewGormEmailLogRepository(tdb.DB)
	txScope := persistence.NewGormTransactionScope(tdb.DB)

	recorded := testutil.NewMockEventHandler()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(engagementapp.NewActivityRecorder(activityRepo))
	bus.Subscribe(reportapp.NewCacheInvalidationHandler(caches.Reports))
	bus.Subscribe(recorded,
		sales.EventTypeDealCreated,
		sales.EventTypeDealStageChanged,
		sales.EventTypeDealWon,
		sales.EventTypeDealLost,
		sales.EventTypeDealValueChanged,
		email.EventTypeEmailSent,
	)

	deliverer := emailapp.NewDeliverer(emailLogRepo, mail.NewLogSender(log), caches.Idempotency, bus, log)
	dispatcher := queue.NewLocalDispatcher(deliverer.Deliver, 2, 16, log)
	dispatcher.Start(context.Background())
	t.Cleanup(func() { _ = dispatcher.Stop(context.Background()) })

	salesRepos := salesapp.Repositories{
		Pipelines:    pipelineRepo,
		Stages:       stageRepo,
		Deals:        dealRepo,
		DealEvents:   persistence.NewGormDealEventRepository(tdb.DB),
		RevenueItems: revenueItemRepo,
	}
	var model assistant.Model
	workspaces := identityapp.NewWorkspaceService(workspaceRepo, memberRepo, userRepo, txScope.Identity(), bus)
	apiKeys := identityapp.NewAPIKeyService(apiKeyRepo, auth.NewBcryptHasher(4))
	users := identityapp.NewUserService(userRepo)
	contacts := contactapp.NewContactService(contactRepo, companyRepo)
	companies := contactapp.NewCompanyService(companyRepo)
	reports := reportapp.NewReportService(dealRepo, pipelineRepo, stageRepo, revenueItemRepo, taskRepo, activityRepo, caches.Reports)
	toolbox := assistant.NewToolbox(dealRepo, stageRepo, contactRepo, activityRepo, reports)

	sessions := auth.NewSessionValidator(config.JWTConfig{Secret: "integration-secret", Issuer: "crm-test"})
	middleware.SetupValidator()
	engine := router.NewEngine(router.Options{
		ServiceName: "crm-test",
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 20},
		Logger:      log,
		Auth:        middleware.NewAuthenticator(apiKeys, sessions, users, workspaces, log),
	}, router.Handlers{
		System:     handler.NewSystemHandler("test").AddCheck("database", func(ctx context.Context) error { return tdb.SqlDB.PingContext(ctx) }),
		Users:      handler.NewUserHandler(users),
		Workspaces: handler.NewWorkspaceHandler(workspaces, apiKeys),
		Pipelines:  handler.NewPipelineHandler(salesapp.NewPipelineService(salesRepos, txScope, bus)),
		Deals: handler.NewDealHandler(
			salesapp.NewDealService(salesRepos, txScope, bus),
			salesapp.NewTranscriptService(dealRepo, persistence.NewGormTranscriptRepository(tdb.DB), assistant.NewTranscriptAnalyzer(model, 512)),
			salesapp.NewRevenueItemService(salesRepos, txScope, bus),
		),
		Contacts:  handler.NewContactHandler(contacts, companies),
		Tasks:     handler.NewTaskHandler(engagementapp.NewTaskService(taskRepo, bus)),
		Notes:     handler.NewNoteHandler(engagementapp.NewNoteService(persistence.NewGormNoteRepository(tdb.DB)), engagementapp.NewActivityService(activityRepo)),
		Files:     handler.NewFileHandler(engagementapp.NewFileService(persistence.NewGormFileRepository(tdb.DB), storage.NewStubStorage())),
		Email:     handler.NewEmailHandler(emailapp.NewEmailService(persistence.NewGormEmailTemplateRepository(tdb.DB), emailLogRepo, dispatcher)),
		Reports:   handler.NewReportHandler(reports),
		Assistant: handler.NewAssistantHandler(assistant.NewChatService(model, toolbox)),
	})

	return &testApp{
		db:       tdb,
		handler:  engine,
		sessions: sessions,
		events:   recorded,
		client:   testutil.NewClient(t, engine),
	}
}

// signUp registers a user through the session routes and creates a workspace they own.
// It returns a client authenticated as that user inside the workspace.
func (a *testApp) signUp(t *testing.T, name string) (*testutil.Client, identityapp.WorkspaceResponse) {
	t.Helper()

	subject := "auth|" + uuid.NewString()
	token, err := a.sessions.Sign(subject, subject[5:13]+"@example.com", time.Hour)
	require.NoError(t, err)

	anon := a.client.WithSession(token, uuid.Nil)
	testutil.RequireStatus(t, anon.Post(api+"/users/sync", nil), http.StatusOK)

	resp := anon.Post(api+"/workspaces", map[string]string{"name": name + " " + subject[5:13]})
	testutil.RequireStatus(t, resp, http.StatusCreated)
	ws := testutil.Data[identityapp.WorkspaceResponse](t, resp)

	return a.client.WithSession(token, ws.ID), ws
}

// apiKey issues a workspace API key through the owner's session
func (a *testApp) apiKey(t *testing.T, owner *testutil.Client) *testutil.Client {
	t.Helper()
	resp := owner.Post(api+"/workspace/api-keys", map[string]string{"name": "integration"})
	testutil.RequireStatus(t, resp, http.StatusCreated)
	key := testutil.Data[identityapp.CreatedAPIKeyResponse](t, resp)
	return a.client.WithAPIKey(key.Key)
}
