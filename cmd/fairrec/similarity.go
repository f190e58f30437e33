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

	"github.com/fairrec/fairrec/export"
	"github.com/fairrec/fairrec/similarity"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var similarityCommand = &cobra.Command{
	Use:   "similarity <user> <user>",
	Short: "Show the similarity between two users",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := parseIds(args)
		if err != nil {
			return errors.Trace(err)
		}
		value, err := eng.sim.Similarity(users[0], users[1])
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Similarity (%s) between user %d and user %d: %s\n",
			eng.sim.Name(), users[0], users[1], formatFloat(value))
		return nil
	},
}

var similarCommand = &cobra.Command{
	Use:   "similar <user>",
	Short: "Show the most similar users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := parseId(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		neighbors, err := eng.stats().MostSimilar(user, eng.conf.Output.TableLimit)
		if err != nil {
			return errors.Trace(err)
		}
		table := &export.Table{
			Header: []string{"User", "Similarity"},
			Rows: lo.Map(neighbors, func(n similarity.Neighbor, _ int) []string {
				return []string{strconv.Itoa(n.UserId), formatFloat(n.Similarity)}
			}),
		}
		return errors.Trace(table.Render(cmd.OutOrStdout()))
	},
}
