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
	"github.com/juju/errors"
)

const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Writer stores a named result table.
type Writer interface {
	Write(name string, header []string, rows [][]string) error
	Close() error
}

// NewWriter creates a writer for format that stores results under dir.
func NewWriter(format, dir string) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(dir)
	case FormatSQLite:
		return NewSQLiteWriter(dir)
	}
	return nil, errors.NotSupportedf("output format %s", format)
}
