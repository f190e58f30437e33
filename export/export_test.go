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
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/fairrec/fairrec/base"
	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/recommend"
	"github.com/fairrec/fairrec/similarity"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func readCSV(t *testing.T, path string) [][]string {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	var lines [][]string
	err = base.ReadLines(bufio.NewScanner(file), ",", func(_ int, fields []string) bool {
		lines = append(lines, fields)
		return true
	})
	require.NoError(t, err)
	return lines
}

func TestCSVWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w, err := NewWriter(FormatCSV, dir)
	require.NoError(t, err)
	defer w.Close()
	err = w.Write("table", []string{"a", "b"}, [][]string{{"1", "x,y"}, {"2", `say "hi"`}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x,y"}, {"2", `say "hi"`}}, readCSV(t, filepath.Join(dir, "table.csv")))

	err = w.Write("broken", []string{"a", "b"}, [][]string{{"1"}})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestNewWriterUnsupported(t *testing.T) {
	_, err := NewWriter("parquet", t.TempDir())
	assert.True(t, errors.Is(err, errors.NotSupported))
}

type SQLiteWriterTestSuite struct {
	suite.Suite
	dir    string
	writer Writer
}

func (suite *SQLiteWriterTestSuite) SetupTest() {
	var err error
	suite.dir = suite.T().TempDir()
	suite.writer, err = NewWriter(FormatSQLite, suite.dir)
	suite.NoError(err)
}

func (suite *SQLiteWriterTestSuite) TearDownTest() {
	suite.NoError(suite.writer.Close())
}

func (suite *SQLiteWriterTestSuite) query(table string) [][]string {
	db, err := sql.Open("sqlite", filepath.Join(suite.dir, SQLiteFile))
	suite.Require().NoError(err)
	defer db.Close()
	rs, err := db.Query(`SELECT "userId", "similarity" FROM "` + table + `" ORDER BY rowid`)
	suite.Require().NoError(err)
	defer rs.Close()
	var rows [][]string
	for rs.Next() {
		var userId, sim string
		suite.Require().NoError(rs.Scan(&userId, &sim))
		rows = append(rows, []string{userId, sim})
	}
	suite.Require().NoError(rs.Err())
	return rows
}

func (suite *SQLiteWriterTestSuite) TestWrite() {
	table := MostSimilarTable(1, 10, similarity.NamePearson, []similarity.Neighbor{
		{UserId: 3, Similarity: 0.5},
		{UserId: 2, Similarity: -0.25},
	})
	suite.NoError(table.Write(suite.writer))
	suite.Equal([][]string{{"3", "0.50000000"}, {"2", "-0.25000000"}}, suite.query(table.Name))

	// writing again replaces the rows
	table.Rows = table.Rows[:1]
	suite.NoError(table.Write(suite.writer))
	suite.Equal([][]string{{"3", "0.50000000"}}, suite.query(table.Name))
}

func (suite *SQLiteWriterTestSuite) TestWriteInvalid() {
	err := suite.writer.Write("empty", nil, nil)
	suite.True(errors.Is(err, errors.NotValid))
	err = suite.writer.Write("short", []string{"userId", "similarity"}, [][]string{{"1"}})
	suite.True(errors.Is(err, errors.NotValid))
}

func TestSQLiteWriter(t *testing.T) {
	suite.Run(t, new(SQLiteWriterTestSuite))
}

func TestTables(t *testing.T) {
	table := SimilarityMatrixTable(similarity.NameJaccard, []similarity.Entry{{A: 1, B: 2, Similarity: 1.0 / 3}})
	assert.Equal(t, "user_similarity_matrix_jaccard", table.Name)
	assert.Equal(t, []string{"userIdA", "userIdB", "similarity"}, table.Header)
	assert.Equal(t, [][]string{{"1", "2", "0.33333333"}}, table.Rows)

	table = RecommendationTable(7, 10, similarity.NameITR, []recommend.Score{{ItemId: 4, Score: 3.5}})
	assert.Equal(t, "most_relevant_10_items_for_user_7_itr", table.Name)
	assert.Equal(t, [][]string{{"4", "3.50000000"}}, table.Rows)
}

func TestComparisonTable(t *testing.T) {
	comparison := &recommend.Comparison{
		User:  1,
		Names: []string{"pearson", "jaccard"},
		Items: []dataset.ItemRating{{ItemId: 10, Value: 4}, {ItemId: 20, Value: 2.5}},
		Evaluations: map[string]recommend.Evaluation{
			"pearson": {Predictions: []recommend.ItemPrediction{
				{ItemId: 10, Prediction: 3.5, Actual: 4},
				{ItemId: 20, Prediction: 2.5, Actual: 2.5},
			}},
			"jaccard": {Predictions: []recommend.ItemPrediction{
				{ItemId: 10, Prediction: 4.25, Actual: 4},
				{ItemId: 20, Prediction: 3, Actual: 2.5},
			}},
		},
	}
	table := ComparisonTable(comparison)
	assert.Equal(t, "prediction_evaluation_user_1", table.Name)
	assert.Equal(t, []string{"Item", "True Rating", "Pred. (pearson)", "Pred. (jaccard)",
		"Abs. Error (pearson)", "Abs. Error (jaccard)", "Best"}, table.Header)
	assert.Equal(t, [][]string{
		{"10", "4", "3.50000000", "4.25000000", "0.50000000", "0.25000000", "jaccard"},
		{"20", "2.5", "2.50000000", "3.00000000", "0.00000000", "0.50000000", "pearson"},
	}, table.Rows)

	scores := ScoreTable(comparison)
	assert.Equal(t, [][]string{
		{"pearson", "1", "0.25000000"},
		{"jaccard", "1", "0.37500000"},
	}, scores.Rows)

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))
	assert.Contains(t, buf.String(), "4.25000000")
}
