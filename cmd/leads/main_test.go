package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jordanlanch/leadmanager/config"
	"github.com/jordanlanch/leadmanager/pkg/analytics"
	"github.com/jordanlanch/leadmanager/pkg/api"
	"github.com/jordanlanch/leadmanager/pkg/database"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/leads"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv starts a lead service and a Redis server and points the client
// configuration at them
func setupEnv(t *testing.T) (exportDir string) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := database.NewClient("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userService := users.NewService(db)
	_, err = userService.EnsureUser(context.Background(), models.RegisterRequest{
		Name: "Demo Admin", Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Config:    &config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1, SeedCount: 12},
		Leads:     leads.NewService(db, nil),
		Analytics: analytics.NewService(db, nil),
		Users:     userService,
	}))
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	dir := t.TempDir()
	exportDir = filepath.Join(dir, "exports")

	t.Setenv("LEADS_API_URL", srv.URL+"/api")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("LEADS_TOKEN", "")
	t.Setenv("LEADS_PAGE_SIZE", "")
	t.Setenv("LOG_FILE", filepath.Join(dir, "leads.log"))
	t.Setenv("EXPORT_DIR", exportDir)
	t.Setenv("S3_BUCKET", "")
	return exportDir
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(""), &out)
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	exportDir := setupEnv(t)

	out, err := runCmd(t, "list")
	require.Error(t, err)
	assert.True(t, domain.IsFetchFailed(err))

	out, err = runCmd(t, "login", "--email", "admin@example.com", "--password", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Signed in as Demo Admin <admin@example.com>\n", out)

	out, err = runCmd(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Sample leads generated successfully")
	assert.Contains(t, out, "12 leads generated")

	out, err = runCmd(t, "list", "--limit", "5", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 6-10 of 12 (page 2 of 3)")

	out, err = runCmd(t, "add", "--name", "Jane Doe", "--email", "jane@example.com", "--phone", "+1 202 555 0143",
		"--status", "qualified", "--source", "referral", "--value", "4200")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Created lead "), out)
	id := strings.Fields(out)[2]

	out, err = runCmd(t, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe  [Qualified]  $4,200")
	assert.Contains(t, out, "[Qualified]")
	assert.Contains(t, out, "Never")

	out, err = runCmd(t, "list", "--search", "jane", "--status", "Qualified")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Showing 1-1 of 1 (page 1 of 1)")

	out, err = runCmd(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Leads:")
	assert.Contains(t, out, "13")
	assert.Contains(t, out, "Leads by Stage")

	out, err = runCmd(t, "export", "--format", "xlsx", "--limit", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 13 leads to ")
	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".xlsx", filepath.Ext(entries[0].Name()))

	out, err = runCmd(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out\n", out)

	_, err = runCmd(t, "list")
	require.Error(t, err)
}

func TestCLI_RejectsBadInput(t *testing.T) {
	setupEnv(t)

	_, err := runCmd(t, "login", "--email", "admin@example.com", "--password", "password123")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown status", []string{"list", "--status", "Won"}},
		{"unsupported page size", []string{"list", "--limit", "7"}},
		{"page zero", []string{"list", "--page", "0"}},
		{"missing lead fields", []string{"add", "--name", "X"}},
		{"unknown format", []string{"export", "--format", "pdf"}},
		{"show without id", []string{"show"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), err.Error())
		})
	}
}

func TestCLI_LoginPromptsForPassword(t *testing.T) {
	setupEnv(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"login", "--email", "admin@example.com"}, strings.NewReader("password123\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Password: Signed in as Demo Admin")

	err = run(context.Background(), []string{"login", "--email", "admin@example.com"}, strings.NewReader("wrong\n"), &out)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestCLI_UnknownCommand(t *testing.T) {
	out, err := runCmd(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, out, "Usage: leads [command] [flags]")

	out, err = runCmd(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "dashboard")
}
