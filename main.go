package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/kzaag/pgm/cmn"
	"github.com/kzaag/pgm/logger"
	"github.com/kzaag/pgm/pgsql"
	"github.com/kzaag/pgm/target"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLogger(args *target.Args) logger.Logger {
	cfg := logger.DefaultConfig()
	if args.Verbose {
		cfg.Level = logger.DebugLevel
	}
	if l := viper.GetString("log-level"); l != "" {
		cfg.Level = logger.LogLevel(l)
	}
	cfg.JSON = viper.GetBool("log-json")
	return logger.NewLogger(cfg)
}

func run(ctx context.Context, args *target.Args) error {
	args.ConfigPath = viper.GetString("config")
	args.Execute = viper.GetBool("execute")
	args.Verbose = viper.GetBool("verbose")
	args.Raw = viper.GetBool("raw")

	c, err := target.NewConfigFromPath(args.ConfigPath, args)
	if err != nil {
		return err
	}

	switch c.Driver {
	case "", pgsql.DriverPq, pgsql.DriverPgx:
	default:
		return errors.Errorf("unknown driver: %s", c.Driver)
	}

	return pgsql.TargetCtxNew(newLogger(args)).ExecConfig(ctx, c, args)
}

func main() {
	viper.SetEnvPrefix("pgm")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	args := target.NewArgs()

	cmd := &cobra.Command{
		Use:           "pgm",
		Short:         "pgm runs schema management steps against postgres targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), args)
		},
	}

	f := cmd.Flags()
	f.StringP("config", "c", "", "config path, file or directory with a *.yml file")
	f.BoolP("execute", "e", false, "execute, if not specified then expect dry run, (nothing gets changed on database)")
	f.BoolP("verbose", "v", false, "verbosity - report progress as program runs")
	f.BoolP("raw", "r", false, "raw output - disable text formatting")
	f.String("log-level", "", "debug, info, warn, error or disabled")
	f.Bool("log-json", false, "log in json")
	f.Var(&args.Demand, "demand", "on-demand targets to run")
	f.Var(&args.Set, "set", "override config define, name=value")

	for _, name := range []string{"config", "execute", "verbose", "raw", "log-level", "log-json"} {
		viper.BindPFlag(name, f.Lookup(name))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		cmn.CndPrintError(viper.GetBool("raw"), err)
		stop()
		os.Exit(1)
	}
}
