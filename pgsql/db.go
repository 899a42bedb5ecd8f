package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kzaag/pgm/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

const (
	DriverPq  = "postgres"
	DriverPgx = "pgx"
)

type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// do not print statements to Output before they are sent
	Quiet bool
	// extra connection parameters, e.g. sslmode, connect_timeout
	Args map[string]string
	// database/sql driver, DriverPq (default) or DriverPgx
	Driver string
	Output io.Writer
	// no ansi formatting on Output
	Raw bool
	// report how long each mutating statement took
	Verbose bool
	// mutating statements are displayed but never sent, reads still are
	DryRun bool
	Logger logger.Logger
}

func DefaultConfig() Config {
	return Config{
		Host:     "localhost",
		Port:     5432,
		Database: "postgres",
		User:     "postgres",
		Driver:   DriverPq,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.Database == "" {
		c.Database = d.Database
	}
	if c.User == "" {
		c.User = d.User
	}
	if c.Driver == "" {
		c.Driver = d.Driver
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = logger.NewLogger(nil)
	}
	return c
}

/*
	libpq style key/value string, understood by both lib/pq and pgx
*/
func __DbQuoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\\t\n") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func ConnString(c Config) string {
	parts := []string{
		"host=" + __DbQuoteValue(c.Host),
		"port=" + strconv.Itoa(c.Port),
		"dbname=" + __DbQuoteValue(c.Database),
		"user=" + __DbQuoteValue(c.User),
	}
	if c.Password != "" {
		parts = append(parts, "password="+__DbQuoteValue(c.Password))
	}

	keys := make([]string, 0, len(c.Args))
	for k := range c.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, __DbQuoteValue(c.Args[k])))
	}

	return strings.Join(parts, " ")
}

/*
	opens the driver and pins a single connection out of it.
	The returned db never hands out a second one.
*/
func DbConnect(ctx context.Context, c Config) (*sql.DB, *sql.Conn, error) {
	db, err := sql.Open(c.Driver, ConnString(c))
	if err != nil {
		return nil, nil, connectionFailed(err, "error opening driver %s", c.Driver)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, nil, connectionFailed(err, "error connecting to %s@%s:%d/%s",
			c.User, c.Host, c.Port, c.Database)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, nil, connectionFailed(err, "error pinging %s@%s:%d/%s",
			c.User, c.Host, c.Port, c.Database)
	}

	return db, conn, nil
}

func DbClose(db *sql.DB, conn *sql.Conn) error {
	var err error
	if conn != nil {
		err = conn.Close()
	}
	if db != nil {
		if e := db.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
