package pgsql

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/kzaag/pgm/cmn"
	"github.com/lib/pq"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

/*
	literal representation of v for display.
	This is what a human reads, it is never what gets executed.
*/
func DisplayLiteral(v interface{}) string {
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil {
			return pq.QuoteLiteral(fmt.Sprint(v))
		}
		v = dv
	}
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return pq.QuoteLiteral(t)
	case []byte:
		return pq.QuoteLiteral(string(t))
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case time.Time:
		return pq.QuoteLiteral(t.Format(time.RFC3339Nano))
	default:
		return pq.QuoteLiteral(fmt.Sprint(t))
	}
}

/*
	RenderStatement substitutes $n placeholders with the quoted value of args[n-1].
	Placeholders without a matching argument are left alone.
*/
func RenderStatement(stmt string, args []interface{}) string {
	if len(args) == 0 {
		return stmt
	}
	return placeholderRe.ReplaceAllStringFunc(stmt, func(p string) string {
		n, err := strconv.Atoi(p[1:])
		if err != nil || n < 1 || n > len(args) {
			return p
		}
		return DisplayLiteral(args[n-1])
	})
}

/*
	skipped marks statements which are shown but not sent (dry run)
*/
func (m *Manager) display(stmt string, args []interface{}, skipped bool) {
	if m.cfg.Quiet {
		return
	}
	r := RenderStatement(stmt, args)
	if m.cfg.Raw {
		fmt.Fprintf(m.cfg.Output, "%s;\n", r)
		return
	}
	if skipped {
		cmn.FPrintflnTrailing(m.cfg.Output, cmn.AttrDim, "%s;", r)
		return
	}
	fmt.Fprintf(m.cfg.Output, "%s;\n", r)
}
