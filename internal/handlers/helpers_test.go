package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marketfair/api/internal/handlers"
	"github.com/marketfair/api/internal/models"
	httpserver "github.com/marketfair/api/internal/transport/http"
)

var testSecret = []byte("test_secret")

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		DB:             db,
		JWTSecret:      testSecret,
		AuthHandler:    &handlers.AuthHandler{DB: db, JWTSecret: testSecret},
		ProductHandler: &handlers.ProductHandler{DB: db, ESIndex: "products"},
		SearchHandler:  &handlers.SearchHandler{Index: "products"},
	})

	return &testEnv{E: e, DB: db}
}

func (env *testEnv) doJSON(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) registerAndLogin(t *testing.T, email, password string) (uint, string) {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}

	recReg := env.doJSON(t, http.MethodPost, "/api/register", creds, "")
	require.Equal(t, http.StatusCreated, recReg.Code)

	var regResp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(recReg.Body.Bytes(), &regResp))
	require.NotZero(t, regResp.ID)

	recLogin := env.doJSON(t, http.MethodPost, "/api/login", creds, "")
	require.Equal(t, http.StatusOK, recLogin.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return regResp.ID, loginResp.Token
}
