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

package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AllNeighbors is the neighbor count meaning every rater of an item.
	AllNeighbors = -1
	EnvPrefix    = "FAIRREC"
)

// Config is the configuration of fairrec.
type Config struct {
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	Group      GroupConfig      `mapstructure:"group"`
	Sequential SequentialConfig `mapstructure:"sequential"`
	Output     OutputConfig     `mapstructure:"output"`
	Jobs       int              `mapstructure:"jobs" validate:"gte=1"`
}

type DatasetConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	Separator string `mapstructure:"separator" validate:"required"`
	Header    bool   `mapstructure:"header"`
}

type SimilarityConfig struct {
	Function string `mapstructure:"function" validate:"oneof=pearson jaccard itr"`
}

type PredictionConfig struct {
	// NeighborCount is the number of most similar users to consider, or -1
	// ("all") for every user who rated the item.
	NeighborCount    int  `mapstructure:"neighbor_count" validate:"gte=-1"`
	UseAbsoluteValue bool `mapstructure:"use_absolute_value"`
}

type GroupConfig struct {
	ConsensusWeightDisagreement float64 `mapstructure:"consensus_weight_disagreement" validate:"gte=0,lte=1"`
	// ConsensusWeightPrediction defaults to 1 - ConsensusWeightDisagreement when 0.
	ConsensusWeightPrediction float64 `mapstructure:"consensus_weight_prediction" validate:"gte=0,lte=1"`
	// GroupSize is the minimum number of distinct members of a group.
	GroupSize int `mapstructure:"group_size" validate:"gte=2"`
}

// WeightPrediction returns the effective consensus weight of the prediction.
func (c GroupConfig) WeightPrediction() float64 {
	if c.ConsensusWeightPrediction == 0 {
		return 1 - c.ConsensusWeightDisagreement
	}
	return c.ConsensusWeightPrediction
}

type SequentialConfig struct {
	IterationsToConsider int `mapstructure:"iterations_to_consider" validate:"gte=1"`
}

type OutputConfig struct {
	Dir        string `mapstructure:"dir" validate:"required"`
	Format     string `mapstructure:"format" validate:"oneof=csv sqlite"`
	TableLimit int    `mapstructure:"table_limit" validate:"gte=1"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:      "ratings.csv",
			Separator: ",",
			Header:    true,
		},
		Similarity: SimilarityConfig{
			Function: "pearson",
		},
		Prediction: PredictionConfig{
			NeighborCount:    AllNeighbors,
			UseAbsoluteValue: true,
		},
		Group: GroupConfig{
			ConsensusWeightDisagreement: 0.2,
			GroupSize:                   2,
		},
		Sequential: SequentialConfig{
			IterationsToConsider: 2,
		},
		Output: OutputConfig{
			Dir:        "results",
			Format:     "csv",
			TableLimit: 10,
		},
		Jobs: 1,
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [dataset]
	v.SetDefault("dataset.path", defaultConfig.Dataset.Path)
	v.SetDefault("dataset.separator", defaultConfig.Dataset.Separator)
	v.SetDefault("dataset.header", defaultConfig.Dataset.Header)
	// [similarity]
	v.SetDefault("similarity.function", defaultConfig.Similarity.Function)
	// [prediction]
	v.SetDefault("prediction.neighbor_count", defaultConfig.Prediction.NeighborCount)
	v.SetDefault("prediction.use_absolute_value", defaultConfig.Prediction.UseAbsoluteValue)
	// [group]
	v.SetDefault("group.consensus_weight_disagreement", defaultConfig.Group.ConsensusWeightDisagreement)
	v.SetDefault("group.consensus_weight_prediction", defaultConfig.Group.ConsensusWeightPrediction)
	v.SetDefault("group.group_size", defaultConfig.Group.GroupSize)
	// [sequential]
	v.SetDefault("sequential.iterations_to_consider", defaultConfig.Sequential.IterationsToConsider)
	// [output]
	v.SetDefault("output.dir", defaultConfig.Output.Dir)
	v.SetDefault("output.format", defaultConfig.Output.Format)
	v.SetDefault("output.table_limit", defaultConfig.Output.TableLimit)
	v.SetDefault("jobs", defaultConfig.Jobs)
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"dataset":       "dataset.path",
	"separator":     "dataset.separator",
	"similarity":    "similarity.function",
	"neighbors":     "prediction.neighbor_count",
	"limit":         "output.table_limit",
	"output-dir":    "output.dir",
	"output-format": "output.format",
	"jobs":          "jobs",
}

// LoadConfig reads the configuration from an optional TOML or YAML file,
// environment variables prefixed with FAIRREC_ and command line flags, in
// increasing order of precedence.
func LoadConfig(path string, flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if flagSet != nil {
		for name, key := range flagKeys {
			if flag := flagSet.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, errors.Trace(err)
				}
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToNeighborCountHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &cfg, nil
}

// stringToNeighborCountHook accepts "all" wherever an integer is expected.
func stringToNeighborCountHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Int {
			return data, nil
		}
		if strings.EqualFold(strings.TrimSpace(data.(string)), "all") {
			return AllNeighbors, nil
		}
		return data, nil
	}
}

func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "config")
	}
	return nil
}
