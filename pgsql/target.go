package pgsql

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/kzaag/pgm/logger"
	"github.com/kzaag/pgm/rdbms"
	"github.com/kzaag/pgm/target"

	"golang.org/x/crypto/ssh/terminal"
)

var readPassword = func() ([]byte, error) {
	return terminal.ReadPassword(int(syscall.Stdin))
}

/*
	connection settings of a config target.
	Zero values are left for Open to fill with defaults.
*/
func TargetConfig(t *target.Target, uargv *target.Args, log logger.Logger) (Config, error) {
	c := Config{
		Host:     t.Server,
		Port:     t.Port,
		Database: t.Database,
		User:     t.User,
		Password: t.Password,
		Args:     t.Args,
		Driver:   t.Driver,
		Raw:      uargv.Raw,
		Verbose:  uargv.Verbose,
		DryRun:   !uargv.Execute,
		Logger:   log,
	}

	switch c.Driver {
	case "", DriverPq, DriverPgx:
	default:
		return c, invalid("unknown driver \"%s\" in target %s, expected %s or %s",
			c.Driver, t.Name, DriverPq, DriverPgx)
	}

	if t.PromptPassword && c.Password == "" {
		fmt.Fprintf(os.Stderr, "password for %s: ", t.Name)
		bytes, err := readPassword()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return c, err
		}
		c.Password = string(bytes)
	}

	return c, nil
}

/*
	exec steps understood by postgres targets, on top of stmt and script
*/
type managerStep func(ctx context.Context, m *Manager, args []string) error

func (fn managerStep) step() target.StepFunc {
	return func(ctx context.Context, r target.Runner, args []string) error {
		m, ok := r.(*Manager)
		if !ok {
			return fmt.Errorf("pgsql exec step got %T, expected *pgsql.Manager", r)
		}
		return fn(ctx, m, args)
	}
}

func forEach(fn func(ctx context.Context, m *Manager, name string) error) managerStep {
	return func(ctx context.Context, m *Manager, args []string) error {
		for _, a := range args {
			if err := fn(ctx, m, a); err != nil {
				return err
			}
		}
		return nil
	}
}

func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func optIntArg(args []string, i int, name string) (int, error) {
	v := optArg(args, i)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid("%s must be a number, got \"%s\"", name, v)
	}
	return n, nil
}

// [name, schema?]
func stepExtension(ctx context.Context, m *Manager, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return invalid("extension step expects [name, schema?], got %d args", len(args))
	}
	return m.CreateExtension(ctx, args[0], optArg(args, 1), false)
}

// [table, column?, srid?, type?, dim?, schema?]
func stepGeometry(ctx context.Context, m *Manager, args []string) error {
	var err error
	if len(args) == 0 || len(args) > 6 {
		return invalid("geometry step expects [table, column?, srid?, type?, dim?, schema?], got %d args", len(args))
	}
	g := GeometryColumn{
		Column: optArg(args, 1),
		Type:   optArg(args, 3),
	}
	if g.SRID, err = optIntArg(args, 2, "srid"); err != nil {
		return err
	}
	if g.Dim, err = optIntArg(args, 4, "dim"); err != nil {
		return err
	}
	return m.AddGeometryColumn(ctx, args[0], g, optArg(args, 5), false)
}

func stepSearchPath(ctx context.Context, m *Manager, args []string) error {
	return m.SetSearchPath(ctx, args...)
}

// every arg is a table definition file or a directory of them
func stepTables(ctx context.Context, m *Manager, args []string) error {
	for _, p := range args {
		dd, err := rdbms.ParserGetTablesInDir(p)
		if err != nil {
			return err
		}
		for i := range dd {
			if err = m.CreateTableFromDef(ctx, dd[i].Table, false); err != nil {
				return err
			}
		}
	}
	return nil
}

/*
	TargetDbNew opens a Manager for a config target. A typed nil never
	ends up in the returned interface.
*/
func TargetDbNew(log logger.Logger) func(context.Context, *target.Target, *target.Args) (target.Runner, error) {
	return func(ctx context.Context, t *target.Target, uargv *target.Args) (target.Runner, error) {
		c, err := TargetConfig(t, uargv, log)
		if err != nil {
			return nil, err
		}
		m, err := Open(ctx, c)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func TargetCtxNew(log logger.Logger) *target.Ctx {
	return &target.Ctx{
		DbNew: TargetDbNew(log),
		Steps: map[string]target.StepFunc{
			"database": forEach(func(ctx context.Context, m *Manager, name string) error {
				return m.CreateDatabase(ctx, name)
			}).step(),
			"schema": forEach(func(ctx context.Context, m *Manager, name string) error {
				return m.CreateSchema(ctx, name, false)
			}).step(),
			"role": forEach(func(ctx context.Context, m *Manager, name string) error {
				return m.CreateRole(ctx, name, false)
			}).step(),
			"user": forEach(func(ctx context.Context, m *Manager, name string) error {
				return m.CreateUser(ctx, name, false)
			}).step(),
			"extension":   managerStep(stepExtension).step(),
			"search_path": managerStep(stepSearchPath).step(),
			"tables":      managerStep(stepTables).step(),
			"geometry":    managerStep(stepGeometry).step(),
		},
		PathSteps: map[string]struct{}{
			"tables": {},
		},
		DbSuffix: ".sql",
	}
}
