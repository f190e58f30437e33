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
	"fmt"
	"io"
	"strconv"

	"github.com/fairrec/fairrec/recommend"
	"github.com/fairrec/fairrec/similarity"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Table is a named result ready to be written or printed.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write stores the table through w.
func (t *Table) Write(w Writer) error {
	return errors.Trace(w.Write(t.Name, t.Header, t.Rows))
}

// Render prints the table to out.
func (t *Table) Render(out io.Writer) error {
	table := tablewriter.NewWriter(out)
	table.Header(t.Header)
	for _, row := range t.Rows {
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.8f", f)
}

func formatRating(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func SimilarityMatrixTable(function string, entries []similarity.Entry) *Table {
	return &Table{
		Name:   fmt.Sprintf("user_similarity_matrix_%s", function),
		Header: []string{"userIdA", "userIdB", "similarity"},
		Rows: lo.Map(entries, func(e similarity.Entry, _ int) []string {
			return []string{strconv.Itoa(e.A), strconv.Itoa(e.B), formatFloat(e.Similarity)}
		}),
	}
}

func MostSimilarTable(user, limit int, function string, neighbors []similarity.Neighbor) *Table {
	return &Table{
		Name:   fmt.Sprintf("most_similar_%d_users_for_user_%d_%s", limit, user, function),
		Header: []string{"userId", "similarity"},
		Rows: lo.Map(neighbors, func(n similarity.Neighbor, _ int) []string {
			return []string{strconv.Itoa(n.UserId), formatFloat(n.Similarity)}
		}),
	}
}

func RecommendationTable(user, limit int, function string, scores []recommend.Score) *Table {
	return &Table{
		Name:   fmt.Sprintf("most_relevant_%d_items_for_user_%d_%s", limit, user, function),
		Header: []string{"itemId", "prediction"},
		Rows: lo.Map(scores, func(s recommend.Score, _ int) []string {
			return []string{strconv.Itoa(s.ItemId), formatFloat(s.Score)}
		}),
	}
}

// ComparisonTable lists, for every item rated by the user, the prediction and
// absolute error of each predictor along with the best one.
func ComparisonTable(c *recommend.Comparison) *Table {
	header := []string{"Item", "True Rating"}
	for _, name := range c.Names {
		header = append(header, fmt.Sprintf("Pred. (%s)", name))
	}
	for _, name := range c.Names {
		header = append(header, fmt.Sprintf("Abs. Error (%s)", name))
	}
	header = append(header, "Best")
	rows := make([][]string, len(c.Items))
	for i, item := range c.Items {
		row := []string{strconv.Itoa(item.ItemId), formatRating(item.Value)}
		for _, name := range c.Names {
			row = append(row, formatFloat(c.Evaluations[name].Predictions[i].Prediction))
		}
		for _, name := range c.Names {
			row = append(row, formatFloat(c.Evaluations[name].Predictions[i].AbsoluteError()))
		}
		best, _ := c.Best(item.ItemId)
		rows[i] = append(row, best)
	}
	return &Table{
		Name:   fmt.Sprintf("prediction_evaluation_user_%d", c.User),
		Header: header,
		Rows:   rows,
	}
}

// ScoreTable summarizes a comparison per predictor.
func ScoreTable(c *recommend.Comparison) *Table {
	scores := c.Scores()
	return &Table{
		Name:   fmt.Sprintf("prediction_scores_user_%d", c.User),
		Header: []string{"Predictor", "Score", "Mean Absolute Error"},
		Rows: lo.Map(c.Names, func(name string, _ int) []string {
			return []string{name, strconv.Itoa(scores[name]), formatFloat(c.Evaluations[name].MeanAbsoluteError())}
		}),
	}
}
