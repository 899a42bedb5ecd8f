package pgsql

import (
	"database/sql"
)

/*
	reads the first column of every row, NULLs are skipped.
	rows are always closed.
*/
func HelperMapStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	ret := make([]string, 0, 10)
	for rows.Next() {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		if s.Valid {
			ret = append(ret, s.String)
		}
	}

	return ret, rows.Err()
}

func HelperContains(list []string, s string) bool {
	for i := 0; i < len(list); i++ {
		if list[i] == s {
			return true
		}
	}
	return false
}
