package cli

import (
	"bytes"
	"catalog-engine/internal/config"
	"catalog-engine/internal/repository"
	"catalog-engine/internal/server"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand()
	require.Equal(t, "catalog", cmd.Use)

	for _, name := range []string{"serve", "migrate", "seed", "promote", "token"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should exist", name)
		require.Equal(t, name, sub.Name())
	}

	envFlag := cmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, envFlag)
	require.Equal(t, "", envFlag.DefValue)
}

func TestDatabaseCommands(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "catalog.db"))

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "schema is up to date")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 6 new and 0 existing items")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 0 new and 6 existing items")

	out, err = execute(t, "promote", "subject-admin", "--name", "Ada")
	require.NoError(t, err)
	require.Contains(t, out, "subject-admin")
	require.Contains(t, out, "is now ADMIN")

	_, err = execute(t, "seed", "--dataset", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDatabaseCommands_RequireDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "migrate")
	require.ErrorIs(t, err, errNoDatabase)

	_, err = execute(t, "promote", "someone")
	require.ErrorIs(t, err, errNoDatabase)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := execute(t, "token", "subject-1", "--name", "Grace", "--ttl", "10m")
	require.NoError(t, err)

	claims := &server.ViewerClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("cli-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, "subject-1", claims.Subject)
	require.Equal(t, "Grace", claims.Name)

	t.Setenv("JWT_SECRET", "")
	_, err = execute(t, "token", "subject-1")
	require.Error(t, err)
}

func TestBootstrap_StaticWhenUnconfigured(t *testing.T) {
	t.Parallel()

	app, err := Bootstrap(context.Background(), config.Config{
		FacetCacheTTL: time.Minute,
		RedisURL:      "redis://127.0.0.1:1/0",
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	require.Equal(t, repository.ModeStatic, app.Service.Mode())
	require.Nil(t, app.Persisted)

	facets := app.Service.ListFacets(context.Background())
	require.Contains(t, facets.Makes, "Toyota")
}

func TestBootstrap_PersistedWhenConfigured(t *testing.T) {
	t.Parallel()

	app, err := Bootstrap(context.Background(), config.Config{
		DatabaseDriver: repository.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "catalog.db"),
		QueryTimeout:   5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	require.Equal(t, repository.ModePersisted, app.Service.Mode())
	require.NotNil(t, app.Persisted)
}

func TestBootstrap_UnreachableDatabaseFails(t *testing.T) {
	t.Parallel()

	_, err := Bootstrap(context.Background(), config.Config{
		DatabaseDriver: "oracle",
		DatabaseURL:    "whatever",
		QueryTimeout:   time.Second,
	})
	require.Error(t, err)
}
