/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package finder

import (
	"reflect"

	"github.com/jackc/pgx/v5"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
)

var pgxRowsType = reflect.TypeOf((*pgx.Rows)(nil)).Elem()

// IsPgxRows reports whether t implements pgx.Rows.
func IsPgxRows(t reflect.Type) bool {
	return t != nil && t.Implements(pgxRowsType)
}

// PgxRows resolves the columns of the current row of a pgx.Rows. Columns
// are read-only and typed any: the Go type of a value depends on the
// connection's type map.
type PgxRows struct{}

// Ensure PgxRows implements apis.Finder.
var _ apis.Finder = PgxRows{}

// NewPgxRows returns the pgx rows finder.
func NewPgxRows() PgxRows {
	return PgxRows{}
}

// Find returns the column called name or at 1-based position name.
func (PgxRows) Find(name string, target any) (apis.Element, bool, error) {
	rows, ok := target.(pgx.Rows)
	if !ok {
		return nil, false, nil
	}
	cols := pgxColumns(rows)
	i, ok := lookupColumn(cols, name)
	if !ok {
		return nil, false, nil
	}
	return pgxColumn(cols[i], i, reflect.TypeOf(target)).Bind(target), true, nil
}

// FindAll returns every column in field description order.
func (PgxRows) FindAll(target any) ([]apis.Element, error) {
	rows, ok := target.(pgx.Rows)
	if !ok {
		return nil, nil
	}
	cols := pgxColumns(rows)
	out := make([]apis.Element, 0, len(cols))
	for i, c := range cols {
		out = append(out, pgxColumn(c, i, reflect.TypeOf(target)).Bind(target))
	}
	return out, nil
}

func pgxColumns(rows pgx.Rows) []column {
	fds := rows.FieldDescriptions()
	cols := make([]column, len(fds))
	for i, fd := range fds {
		cols[i] = column{name: fd.Name, typ: anyType}
	}
	return cols
}

func pgxColumn(c column, i int, declaring reflect.Type) *element.Generic {
	return element.New(element.Spec{
		Name:          c.name,
		DeclaringType: declaring,
		Type:          c.typ,
		Accessor: &slot{
			accepts: func(target any) bool {
				_, ok := target.(pgx.Rows)
				return ok
			},
			read: func(target any) (any, error) {
				vals, err := target.(pgx.Rows).Values()
				if err != nil {
					return nil, err
				}
				if i >= len(vals) {
					return nil, element.ErrIndexOutOfRange
				}
				return vals[i], nil
			},
		},
	})
}
