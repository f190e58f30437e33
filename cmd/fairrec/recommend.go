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

package main

import (
	"fmt"
	"strconv"

	"github.com/fairrec/fairrec/base/log"
	"github.com/fairrec/fairrec/export"
	"github.com/fairrec/fairrec/recommend"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var predictCommand = &cobra.Command{
	Use:   "predict <user> <item>",
	Short: "Predict the rating of a user for an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIds(args)
		if err != nil {
			return errors.Trace(err)
		}
		value, err := eng.predictor.Predict(ids[0], ids[1])
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Predicted rating for user %d on item %d: %s\n", ids[0], ids[1], formatFloat(value))
		return nil
	},
}

var recommendCommand = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Recommend the most relevant unrated items to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := parseId(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		recommender := eng.recommender()
		if source, _ := cmd.Flags().GetString("filter"); source != "" {
			filter, err := recommend.NewFilter(source)
			if err != nil {
				return errors.Trace(err)
			}
			recommender.WithFilter(filter)
		}
		scores, err := recommender.Recommend(user, eng.conf.Output.TableLimit)
		if err != nil {
			return errors.Trace(err)
		}
		table := &export.Table{
			Header: []string{"Item", "Predicted Rating"},
			Rows: lo.Map(scores, func(s recommend.Score, _ int) []string {
				return []string{strconv.Itoa(s.ItemId), formatFloat(s.Score)}
			}),
		}
		return errors.Trace(table.Render(cmd.OutOrStdout()))
	},
}

var evaluateCommand = &cobra.Command{
	Use:   "evaluate <user>",
	Short: "Compare predictions of every similarity function with the ratings of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := parseId(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		evaluator, err := eng.evaluator()
		if err != nil {
			return errors.Trace(err)
		}
		comparison, err := evaluator.Compare(cmd.Context(), user)
		if err != nil {
			return errors.Trace(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Comparison of predictions for user %d:\n", user)
		if err = export.ComparisonTable(comparison).Render(out); err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(out, "Scores on user %d:\n", user)
		return errors.Trace(export.ScoreTable(comparison).Render(out))
	},
}

var exportCommand = &cobra.Command{
	Use:   "export <user>",
	Short: "Save the similarity matrix, neighbors, recommendations and evaluation of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := parseId(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		limit, function := eng.conf.Output.TableLimit, eng.sim.Name()
		writer, err := export.NewWriter(eng.conf.Output.Format, eng.conf.Output.Dir)
		if err != nil {
			return errors.Trace(err)
		}
		defer writer.Close()

		stats := eng.stats()
		entries, err := stats.Matrix(cmd.Context(), eng.conf.Jobs)
		if err != nil {
			return errors.Trace(err)
		}
		neighbors, err := stats.MostSimilar(user, limit)
		if err != nil {
			return errors.Trace(err)
		}
		scores, err := eng.recommender().Recommend(user, limit)
		if err != nil {
			return errors.Trace(err)
		}
		evaluator, err := eng.evaluator()
		if err != nil {
			return errors.Trace(err)
		}
		comparison, err := evaluator.Compare(cmd.Context(), user)
		if err != nil {
			return errors.Trace(err)
		}
		tables := []*export.Table{
			export.SimilarityMatrixTable(function, entries),
			export.MostSimilarTable(user, limit, function, neighbors),
			export.RecommendationTable(user, limit, function, scores),
			export.ComparisonTable(comparison),
		}
		for _, table := range tables {
			if err = table.Write(writer); err != nil {
				return errors.Trace(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "- %s saved to %s (%s)\n", table.Name, eng.conf.Output.Dir, eng.conf.Output.Format)
		}
		log.Logger().Info("export results", zap.Int("user", user), zap.Int("n_tables", len(tables)))
		return nil
	},
}

func init() {
	recommendCommand.Flags().String("filter", "", `expression over user, item and score, e.g. "score >= 4"`)
}
