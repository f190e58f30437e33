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
	"io"
	"strconv"

	"github.com/fairrec/fairrec/common/parallel"
	"github.com/fairrec/fairrec/export"
	"github.com/fairrec/fairrec/group"
	"github.com/fairrec/fairrec/recommend"
	"github.com/fairrec/fairrec/sequential"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// renderGroupScores prints a group list with the prediction of every member
// and the disagreement of the group on each item.
func renderGroupScores(out io.Writer, g group.Group, scores []recommend.Score) error {
	members := g.Members()
	header := []string{"#", "Item", "Pred. (Group)"}
	for _, member := range members {
		header = append(header, fmt.Sprintf("Pred. (User %d)", member))
	}
	header = append(header, "Disagreement")
	disagreement := eng.disagreement()
	rows := make([][]string, len(scores))
	for i, score := range scores {
		row := []string{fmt.Sprintf("%d.", i+1), strconv.Itoa(score.ItemId), formatFloat(score.Score)}
		for _, member := range members {
			value, err := eng.predictor.Predict(member, score.ItemId)
			if err != nil {
				return errors.Trace(err)
			}
			row = append(row, formatFloat(value))
		}
		value, err := disagreement.Disagreement(g, score.ItemId)
		if err != nil {
			return errors.Trace(err)
		}
		rows[i] = append(row, formatFloat(value))
	}
	table := &export.Table{Header: header, Rows: rows}
	return errors.Trace(table.Render(out))
}

var groupCommand = &cobra.Command{
	Use:   "group <user> <user>...",
	Short: "Recommend items to a group of users",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := eng.parseGroup(args)
		if err != nil {
			return errors.Trace(err)
		}
		strategy, _ := cmd.Flags().GetString("strategy")
		rounds, _ := cmd.Flags().GetInt("rounds")
		excludePrevious, _ := cmd.Flags().GetBool("exclude-previous")
		aggregation, err := eng.aggregation(strategy)
		if err != nil {
			return errors.Trace(err)
		}
		recommender := group.NewRecommender(eng.ds, aggregation, eng.rounds, excludePrevious)
		out := cmd.OutOrStdout()
		for round := 1; round <= rounds; round++ {
			scores, err := recommender.Recommend(g, eng.conf.Output.TableLimit)
			if err != nil {
				return errors.Trace(err)
			}
			fmt.Fprintf(out, "Most relevant items for group %v (%s, round %d):\n", g, strategy, round)
			if err = renderGroupScores(out, g, scores); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	},
}

var disagreementCommand = &cobra.Command{
	Use:   "disagreement <user> <user>...",
	Short: "Show how much a group disagrees on items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := eng.parseGroup(args)
		if err != nil {
			return errors.Trace(err)
		}
		items := eng.ds.Items()
		if cmd.Flags().Changed("item") {
			item, _ := cmd.Flags().GetInt("item")
			if !eng.ds.HasItem(item) {
				return errors.NotFoundf("item %d", item)
			}
			items = []int{item}
		}
		disagreement := eng.disagreement()
		scores := make([]recommend.Score, len(items))
		err = parallel.Parallel(cmd.Context(), len(items), eng.conf.Jobs, func(_, i int) error {
			value, err := disagreement.Disagreement(g, items[i])
			if err != nil {
				return errors.Trace(err)
			}
			scores[i] = recommend.Score{ItemId: items[i], Score: value}
			return nil
		})
		if err != nil {
			return errors.Trace(err)
		}
		scores = recommend.Top(scores, eng.conf.Output.TableLimit)
		table := &export.Table{
			Header: []string{"Item", "Disagreement"},
			Rows: lo.Map(scores, func(s recommend.Score, _ int) []string {
				return []string{strconv.Itoa(s.ItemId), formatFloat(s.Score)}
			}),
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Disagreements for group %v:\n", g)
		return errors.Trace(table.Render(cmd.OutOrStdout()))
	},
}

var sequentialCommand = &cobra.Command{
	Use:   "sequential <user> <user>...",
	Short: "Recommend items to a group over several rounds with hybrid aggregation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := eng.parseGroup(args)
		if err != nil {
			return errors.Trace(err)
		}
		rounds, _ := cmd.Flags().GetInt("rounds")
		hybrid := eng.hybrid()
		recommender := sequential.NewRecommender(eng.rounds, hybrid)
		members := g.Members()
		out := cmd.OutOrStdout()
		for round := 1; round <= rounds; round++ {
			alpha, err := hybrid.Disagreement(g)
			if err != nil {
				return errors.Trace(err)
			}
			scores, err := recommender.Recommend(g, eng.conf.Output.TableLimit)
			if err != nil {
				return errors.Trace(err)
			}
			fmt.Fprintf(out, "Round %d for group %v (alpha %s):\n", round, g, formatFloat(alpha))
			if err = renderGroupScores(out, g, scores); err != nil {
				return errors.Trace(err)
			}
			items := lo.Map(scores, func(s recommend.Score, _ int) int {
				return s.ItemId
			})
			if len(items) == 0 {
				continue
			}
			satisfactions, err := hybrid.Satisfactions(g, items)
			if err != nil {
				return errors.Trace(err)
			}
			table := &export.Table{
				Header: []string{"User", "Satisfaction"},
				Rows: lo.Map(members, func(member int, i int) []string {
					return []string{strconv.Itoa(member), formatFloat(satisfactions[i])}
				}),
			}
			if err = table.Render(out); err != nil {
				return errors.Trace(err)
			}
		}
		fmt.Fprintf(out, "Rounds recorded for group %v: %d\n", g, len(recommender.PreviousRounds(g)))
		return nil
	},
}

func init() {
	groupCommand.Flags().String("strategy", group.NameAverage, "aggregation strategy (average, least-misery, consensus)")
	groupCommand.Flags().Int("rounds", 1, "number of rounds")
	groupCommand.Flags().Bool("exclude-previous", false, "skip items recommended to the group in earlier rounds")
	disagreementCommand.Flags().Int("item", 0, "show the disagreement on a single item")
	sequentialCommand.Flags().Int("rounds", 3, "number of rounds")
}
