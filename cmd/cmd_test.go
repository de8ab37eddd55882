package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"lead-capture-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "token", "--subject", "ops@example.com", "--hours", "2")
	require.NoError(t, err)

	claims, err := utils.DecodeJWT("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims["sub"])
	assert.Equal(t, utils.RoleAdmin, claims["role"])
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "token", "--hours", "1")

	assert.Error(t, err)
}

func TestMigrateAndRescore(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_URL", "sqlite:"+filepath.Join(t.TempDir(), "leads.db"))

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "rescore")
	require.NoError(t, err)
	assert.Contains(t, out, "0 leads rescored")
}

func TestCommandsNeedDatabase(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_URL", "")

	_, err := run(t, "migrate")

	assert.ErrorIs(t, err, errNoDatabase)
}

func TestCRMSync_WithoutProvider(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_URL", "sqlite:"+filepath.Join(t.TempDir(), "leads.db"))
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "")
	t.Setenv("SALESFORCE_USERNAME", "")

	_, err := run(t, "crm-sync", "--lead", "abc")

	assert.ErrorContains(t, err, "no CRM configured")
}
