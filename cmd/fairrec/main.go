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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/fairrec/fairrec/base/log"
	"github.com/fairrec/fairrec/cmd/version"
	"github.com/fairrec/fairrec/config"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	conf *config.Config
	eng  *engine
)

var rootCommand = &cobra.Command{
	Use:           "fairrec",
	Short:         "Fairness-aware group recommendation over collaborative filtering.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		debug, _ := flags.GetBool("debug")
		if err := log.SetLogger(flags, debug); err != nil {
			return errors.Annotate(err, "failed to set up logger")
		}
		if cmd.Name() == versionCommand.Name() {
			return nil
		}
		// load config
		configPath, _ := flags.GetString("config")
		var err error
		if conf, err = config.LoadConfig(configPath, flags); err != nil {
			return errors.Annotate(err, "failed to load config")
		}
		log.Logger().Debug("load config", zap.String("config", configPath), zap.Any("values", conf))
		eng, err = newEngine(conf, !debug)
		return errors.Trace(err)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		metricsPath, _ := cmd.Root().PersistentFlags().GetString("metrics-path")
		if metricsPath == "" {
			return nil
		}
		if err := prometheus.WriteToTextfile(metricsPath, prometheus.DefaultGatherer); err != nil {
			return errors.Trace(err)
		}
		log.Logger().Info("write metrics", zap.String("path", metricsPath))
		return nil
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the version of fairrec",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.BuildInfo())
	},
}

func init() {
	flags := rootCommand.PersistentFlags()
	log.AddFlags(flags)
	flags.Bool("debug", false, "use debug log mode")
	flags.StringP("config", "c", "", "configuration file path")
	flags.String("metrics-path", "", "write prometheus metrics to this file on exit")
	flags.String("dataset", "", "path of the ratings file")
	flags.String("separator", "", "field separator of the ratings file")
	flags.String("similarity", "", "similarity function (pearson, jaccard, itr)")
	flags.String("neighbors", "", `number of neighbors used by predictions, or "all"`)
	flags.Int("limit", 0, "maximum number of rows in tables")
	flags.Int("jobs", 0, "number of concurrent jobs")
	flags.String("output-dir", "", "directory of exported results")
	flags.String("output-format", "", "format of exported results (csv, sqlite)")

	rootCommand.AddCommand(versionCommand)
	rootCommand.AddCommand(infoCommand, ratingsCommand, commonCommand)
	rootCommand.AddCommand(similarityCommand, similarCommand)
	rootCommand.AddCommand(predictCommand, recommendCommand, evaluateCommand, exportCommand)
	rootCommand.AddCommand(groupCommand, disagreementCommand, sequentialCommand)
}

func parseId(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NotValidf("id %q", arg)
	}
	return id, nil
}

func parseIds(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		var err error
		if ids[i], err = parseId(arg); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return ids, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCommand.ExecuteContext(ctx); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
