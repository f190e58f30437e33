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
	"bufio"
	"os"
	"path/filepath"

	"github.com/fairrec/fairrec/base"
	"github.com/fairrec/fairrec/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// CSVWriter writes every table to <dir>/<name>.csv.
type CSVWriter struct {
	dir string
	sep string
}

func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Trace(err)
	}
	return &CSVWriter{dir: dir, sep: ","}, nil
}

func (w *CSVWriter) Write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if _, err = writer.WriteString(base.JoinFields(header, w.sep) + "\r\n"); err != nil {
		return errors.Trace(err)
	}
	for _, row := range rows {
		if len(row) != len(header) {
			return errors.NotValidf("row of %d fields in table %s with %d columns", len(row), name, len(header))
		}
		if _, err = writer.WriteString(base.JoinFields(row, w.sep) + "\r\n"); err != nil {
			return errors.Trace(err)
		}
	}
	if err = writer.Flush(); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("write results", zap.String("path", path), zap.Int("n_rows", len(rows)))
	return nil
}

func (w *CSVWriter) Close() error {
	return nil
}
