package pgsql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kzaag/pgm/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetConfig(t *testing.T) {
	t.Run("Should map target onto manager config", func(t *testing.T) {
		tg := &target.Target{
			Name:     "local",
			Server:   "db.internal",
			Port:     5433,
			Database: "analytics_db",
			User:     "admin",
			Password: "secret",
			Driver:   DriverPgx,
			Args:     map[string]string{"sslmode": "disable"},
		}
		c, err := TargetConfig(tg, &target.Args{Execute: true, Raw: true}, nil)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", c.Host)
		assert.Equal(t, 5433, c.Port)
		assert.Equal(t, "analytics_db", c.Database)
		assert.Equal(t, DriverPgx, c.Driver)
		assert.False(t, c.DryRun)
		assert.True(t, c.Raw)
		assert.False(t, c.Quiet)
	})

	t.Run("Should reject unknown driver", func(t *testing.T) {
		_, err := TargetConfig(&target.Target{Name: "x", Driver: "mssql"}, &target.Args{}, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should prompt for password", func(t *testing.T) {
		prev := readPassword
		defer func() { readPassword = prev }()
		readPassword = func() ([]byte, error) {
			return []byte("typed"), nil
		}

		c, err := TargetConfig(&target.Target{Name: "x", PromptPassword: true}, &target.Args{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "typed", c.Password)
		assert.True(t, c.DryRun)
	})
}

/*
	target ctx whose DbNew hands out m, which is closed by the runner
*/
func testTargetCtx(m *Manager) *target.Ctx {
	ctx := TargetCtxNew(nil)
	ctx.DbNew = func(context.Context, *target.Target, *target.Args) (target.Runner, error) {
		return m, nil
	}
	return ctx
}

func TestTargetExec(t *testing.T) {
	ctx := context.Background()

	t.Run("Should run steps and commit each", func(t *testing.T) {
		dir := t.TempDir()
		def := []byte(`table:
  name: events
  schema: analytics
  columns:
    - name: id
      type: integer
    - name: payload
      type: jsonb
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "events.yml"), def, 0o644))

		m, mock, _, _ := newTestManager(t, Config{})
		expectSchemas(mock, "public")
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE SCHEMA "analytics"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()
		expectSchemas(mock, "public", "analytics")
		expectTables(mock, "analytics")
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE "analytics"."events" ("id" int4, "payload" jsonb)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()
		mock.ExpectClose()

		tg := &target.Target{
			Name: "local",
			Exec: []target.Exec{
				{Type: "schema", Args: []string{"analytics"}},
				{Type: "tables", Args: []string{"."}},
			},
		}
		err := testTargetCtx(m).ExecTarget(ctx, dir, tg, &target.Args{Execute: true})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should only display statements on dry run", func(t *testing.T) {
		m, mock, out, _ := newTestManager(t, Config{})
		expectSchemas(mock, "public")
		mock.ExpectClose()

		tg := &target.Target{
			Name: "local",
			Exec: []target.Exec{
				{Type: "schema", Args: []string{"analytics"}},
				{Type: "stmt", Args: []string{"GRANT USAGE ON SCHEMA analytics TO readonly", " "}},
			},
		}
		err := testTargetCtx(m).ExecTarget(ctx, "", tg, &target.Args{})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, out.String(), `CREATE SCHEMA "analytics";`)
		assert.Contains(t, out.String(), "GRANT USAGE ON SCHEMA analytics TO readonly;")
	})

	t.Run("Should honour err policy", func(t *testing.T) {
		m, mock, _, _ := newTestManager(t, Config{})
		mock.ExpectClose()

		tg := &target.Target{
			Name: "local",
			Exec: []target.Exec{
				{Type: "geometry", Args: []string{"places", "geom", "not-a-number"}, Err: target.ErrWarn},
				{Type: "extension", Args: []string{}, Err: target.ErrIgnore},
				{Type: "geometry", Args: []string{"places", "geom", "4326", "POINT", "x"}, Err: target.ErrWarnAbort},
				{Type: "nope"},
			},
		}
		err := testTargetCtx(m).ExecTarget(ctx, "", tg, &target.Args{Execute: true, Raw: true})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should stop on unknown step", func(t *testing.T) {
		m, mock, _, _ := newTestManager(t, Config{})
		mock.ExpectClose()

		tg := &target.Target{Name: "local", Exec: []target.Exec{{Type: "merge"}}}
		err := testTargetCtx(m).ExecTarget(ctx, "", tg, &target.Args{Raw: true})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
