package rdbms

import "strings"

/*
	IfExists decides what CreateTable does with a table that is already there.
*/
type IfExists string

const (
	// leave the existing table alone
	IfExistsSkip IfExists = "skip"
	// drop it and create it again
	IfExistsDrop IfExists = "drop"
	// send CREATE TABLE anyway and let the server complain
	IfExistsFail IfExists = "fail"
)

func ParseIfExists(s string) (IfExists, bool) {
	switch IfExists(strings.ToLower(strings.TrimSpace(s))) {
	case "", IfExistsSkip:
		return IfExistsSkip, true
	case IfExistsDrop:
		return IfExistsDrop, true
	case IfExistsFail:
		return IfExistsFail, true
	}
	return "", false
}

type Column struct {
	Name string
	/*
		Type is what the user wrote. Drivers normalize it into their own
		spelling before it reaches any statement.
	*/
	Type string
}

type Table struct {
	Name     string
	Schema   string
	IfExists IfExists `yaml:"if_exists"`
	Columns  []Column
}

func (t *Table) ColumnNames() []string {
	ret := make([]string, len(t.Columns))
	for i := range t.Columns {
		ret[i] = t.Columns[i].Name
	}
	return ret
}

func (t *Table) ColumnTypes() TypeList {
	ret := make(TypeList, len(t.Columns))
	for i := range t.Columns {
		ret[i] = t.Columns[i].Type
	}
	return ret
}
