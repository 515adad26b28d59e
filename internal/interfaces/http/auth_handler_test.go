package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk-api/internal/application/auth"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	apphttp "github.com/flightdesk/flightdesk-api/internal/interfaces/http"
)

type stubUserRepo struct {
	created []*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error {
	cp := *u
	r.created = append(r.created, &cp)
	return nil
}
func (r *stubUserRepo) GetByID(string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(*entity.User) error { return nil }

// buildAuthApp mirrors the router's wiring: public register, admin-gated
// member creation.
func buildAuthApp(repo *stubUserRepo) *fiber.App {
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})
	authHandler := apphttp.NewAuthHandler(uc)
	memberHandler := apphttp.NewMemberHandler(uc)

	app := fiber.New()
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/members",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleOwner),
		memberHandler.Create,
	)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegister_RoleInBodyIsIgnored(t *testing.T) {
	repo := &stubUserRepo{}
	app := buildAuthApp(repo)

	// A crafted body naming an elevated role must still produce a student.
	resp := postJSON(t, app, "/api/auth/register",
		`{"email":"evil@example.com","password":"secret123","name":"E","role":"owner"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleStudent, body["role"])

	require.Len(t, repo.created, 1)
	assert.Equal(t, entity.RoleStudent, repo.created[0].Role)
}

func TestCreateMember_RequiresAdmin(t *testing.T) {
	repo := &stubUserRepo{}
	app := buildAuthApp(repo)
	body := `{"email":"cfi@example.com","password":"secret123","role":"instructor"}`

	resp := postJSON(t, app, "/api/members", body, tokenForRole(t, entity.RoleStudent))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, repo.created)

	resp = postJSON(t, app, "/api/members", body, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.RoleInstructor, out["role"])
}
