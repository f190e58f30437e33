// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairrec/fairrec/base/log"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const SQLiteFile = "fairrec.db"

// SQLiteWriter writes every table into one SQLite database. Columns are TEXT.
type SQLiteWriter struct {
	db   *sql.DB
	path string
}

func NewSQLiteWriter(dir string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Trace(err)
	}
	path := filepath.Join(dir, SQLiteFile)
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(wal)")
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &SQLiteWriter{db: db, path: path}, nil
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

// Write replaces the content of table name with rows.
func (w *SQLiteWriter) Write(name string, header []string, rows [][]string) error {
	if len(header) == 0 {
		return errors.NotValidf("table %s without columns", name)
	}
	columns := lo.Map(header, func(column string, _ int) string {
		return quote(column)
	})
	tx, err := w.db.Begin()
	if err != nil {
		return errors.Trace(err)
	}
	defer tx.Rollback()
	if _, err = tx.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s TEXT)",
		quote(name), strings.Join(columns, " TEXT, "))); err != nil {
		return errors.Trace(err)
	}
	if _, err = tx.Exec(fmt.Sprintf("DELETE FROM %s", quote(name))); err != nil {
		return errors.Trace(err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(name), strings.Join(columns, ", "), strings.Repeat("?, ", len(header)-1)+"?"))
	if err != nil {
		return errors.Trace(err)
	}
	defer stmt.Close()
	for _, row := range rows {
		if len(row) != len(header) {
			return errors.NotValidf("row of %d fields in table %s with %d columns", len(row), name, len(header))
		}
		if _, err = stmt.Exec(lo.ToAnySlice(row)...); err != nil {
			return errors.Trace(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("write results", zap.String("path", w.path), zap.String("table", name), zap.Int("n_rows", len(rows)))
	return nil
}

func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
