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

package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fairrec/fairrec/base"
	"github.com/fairrec/fairrec/base/log"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// LoadOptions controls how a rating feed is parsed.
type LoadOptions struct {
	Separator string
	Header    bool
	Progress  bool
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Separator: ",", Header: true}
}

// LoadCSV loads a dataset from a delimited file of (user, item, rating) rows.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	var reader io.Reader = file
	if opts.Progress {
		stat, err := file.Stat()
		if err != nil {
			return nil, errors.Trace(err)
		}
		pbReader := progressbar.NewReader(file, progressbar.DefaultBytes(stat.Size(), "Loading ratings"))
		reader = &pbReader
	}
	ds, err := Load(reader, opts)
	if err != nil {
		return nil, errors.Annotatef(err, "load %s", path)
	}
	log.Logger().Info("load dataset",
		zap.String("path", path),
		zap.Int("n_ratings", ds.Count()),
		zap.Int("n_users", len(ds.Users())),
		zap.Int("n_items", len(ds.Items())))
	return ds, nil
}

// Load parses ratings from a reader. Malformed rows are skipped with a warning.
func Load(r io.Reader, opts LoadOptions) (*Dataset, error) {
	if opts.Separator == "" {
		opts.Separator = ","
	}
	var rows []Rating
	sc := bufio.NewScanner(r)
	err := base.ReadLines(sc, opts.Separator, func(lineNumber int, fields []string) bool {
		if opts.Header && lineNumber == 0 {
			return true
		}
		row, err := parseRating(fields)
		if err != nil {
			log.Logger().Warn("skip invalid rating",
				zap.Int("line_number", lineNumber+1),
				zap.String("line", strings.Join(fields, opts.Separator)),
				zap.Error(err))
			return true
		}
		rows = append(rows, row)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return New(rows), nil
}

func parseRating(fields []string) (Rating, error) {
	if len(fields) < 3 {
		return Rating{}, errors.NotValidf("row with %d fields", len(fields))
	}
	userId, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Rating{}, errors.Trace(err)
	}
	itemId, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Rating{}, errors.Trace(err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Rating{}, errors.Trace(err)
	}
	return Rating{UserId: userId, ItemId: itemId, Value: value}, nil
}
