package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskify/taskify-api/config"
	"github.com/taskify/taskify-api/handlers"
	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
	"github.com/taskify/taskify-api/router"
	"github.com/taskify/taskify-api/storage"
	"github.com/taskify/taskify-api/utils"
)

const (
	testJWTSecret  = "test-secret"
	testAgentToken = "agent-secret"
)

type echoChat struct{}

func (echoChat) SendMessage(userID, message string) []string {
	return []string{"echo: " + message}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:            testJWTSecret,
		JWTIssuer:            "taskify-api",
		JWTAudience:          "taskify-client",
		JWTExpirationMinutes: 60,
		AgentAPIToken:        testAgentToken,
		AvatarDir:            t.TempDir(),
		AvatarURLPrefix:      "/uploads/avatars",
	}
}

func newTestApp(t *testing.T) (*fiber.App, *repository.MemoryUnitOfWork) {
	t.Helper()

	cfg := testConfig(t)
	uow := repository.NewMemoryUnitOfWork()
	// the memory store is the backing state itself, so the factory hands
	// out the same instance; its writes are mutex-guarded
	newUoW := repository.UnitOfWorkFactory(func() repository.UnitOfWork { return uow })

	blobs, err := storage.NewLocalStorage(cfg.AvatarDir, cfg.AvatarURLPrefix)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	router.SetupRoutes(app, cfg, router.Handlers{
		Auth:          handlers.NewAuthHandler(newUoW, cfg, blobs),
		Tasks:         handlers.NewTaskHandler(newUoW),
		DailyGoals:    handlers.NewDailyGoalHandler(newUoW),
		FocusSessions: handlers.NewFocusSessionHandler(newUoW),
		Internal:      handlers.NewInternalTaskHandler(newUoW),
		Chat:          handlers.NewChatHandler(echoChat{}),
	})

	return app, uow
}

func createUser(t *testing.T, uow *repository.MemoryUnitOfWork, email, password string, roles ...string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		UserName:     "Test User",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, uow.Users().Create(context.Background(), user))

	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	for _, role := range roles {
		require.NoError(t, uow.Users().AddRole(context.Background(), user.ID, role))
	}
	user.Roles = roles

	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user, testJWTSecret, "taskify-api", "taskify-client", time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
