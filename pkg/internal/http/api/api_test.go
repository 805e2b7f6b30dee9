package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/media"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "api-test-secret"

type refusingStore struct{}

func (refusingStore) Delete(_ context.Context, key string) error {
	return fmt.Errorf("bucket refused to delete %s", key)
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "showcase.db") + "?_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, database.RunMigration(db))
	database.C = db

	media.M = refusingStore{}
	viper.Set("security.jwt_secret", testSecret)
	t.Cleanup(func() {
		media.M = nil
		viper.Set("security.jwt_secret", nil)
	})

	app := fiber.New(fiber.Config{
		JSONEncoder:  jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:  jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler: exts.ErrorHandler,
	})
	app.Use(exts.ContextMiddleware)
	MapAPIs(app, "/api")
	return app
}

func issueToken(t *testing.T, accountID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, exts.AccountClaims{
		Name: "tester",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, jsoniter.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func TestProfileEndpoints(t *testing.T) {
	app := setupApp(t)
	token := issueToken(t, uuid.NewString())

	var failure struct {
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, http.MethodGet, "/api/profiles/me", "", "", &failure))
	assert.NotEmpty(t, failure.Error)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, http.MethodGet, "/api/profiles/me", "not-a-jwt", "", nil))
	assert.Equal(t, http.StatusNotFound, doRequest(t, app, http.MethodGet, "/api/profiles/"+uuid.NewString(), "", "", nil))

	var profile struct {
		ID        uint   `json:"id"`
		AccountID string `json:"account_id"`
		Posts     []any  `json:"posts"`
	}
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/api/profiles/me", token, "", &profile))
	assert.NotZero(t, profile.ID)

	var public struct {
		ID uint `json:"id"`
	}
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/api/profiles/"+profile.AccountID, "", "", &public))
	assert.Equal(t, profile.ID, public.ID)
}

func TestDeletionEndpoints(t *testing.T) {
	app := setupApp(t)
	token := issueToken(t, uuid.NewString())
	stranger := issueToken(t, uuid.NewString())

	var gallery models.Gallery
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPost, "/api/galleries", token,
		`{"name":"Trip","photos":["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]}`, &gallery))
	require.Len(t, gallery.Photos, 2)

	photoURL := fmt.Sprintf("/api/photos/%d", gallery.Photos[0].ID)
	assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodDelete, photoURL, stranger, "", nil))
	assert.Equal(t, http.StatusBadGateway, doRequest(t, app, http.MethodDelete, photoURL, token, "", nil))

	galleryURL := fmt.Sprintf("/api/galleries/%d", gallery.ID)
	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodDelete, galleryURL, token, "", nil))
	assert.Equal(t, http.StatusNotFound, doRequest(t, app, http.MethodDelete, galleryURL, token, "", nil))

	var post models.Post
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPost, "/api/posts", token,
		`{"type":"post","content":["https://cdn.example.com/c.jpg"],"caption":"hello"}`, &post))
	postURL := fmt.Sprintf("/api/posts/%d", post.ID)
	assert.Equal(t, http.StatusBadGateway, doRequest(t, app, http.MethodDelete, postURL, token, "", nil))
	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, postURL, "", "", nil))

	var project models.Project
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPost, "/api/projects", token,
		`{"name":"Compiler","skills":["Go"]}`, &project))
	require.Len(t, project.Skills, 1)
	skillURL := fmt.Sprintf("/api/skills/%d?project=%d", project.Skills[0].ID, project.ID)
	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodDelete, skillURL, token, "", nil))
	assert.Equal(t, http.StatusNotFound, doRequest(t, app, http.MethodDelete, skillURL, token, "", nil))
}

func TestInvalidInputEndpoints(t *testing.T) {
	app := setupApp(t)
	token := issueToken(t, uuid.NewString())

	var failure struct {
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodPost, "/api/projects", token,
		`{"name":"   ","skills":["Go"]}`, &failure))
	assert.Contains(t, failure.Error, "project name cannot be empty")
	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodPost, "/api/galleries", token,
		`{"photos":[]}`, nil))
}
