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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fairrec/fairrec/base/log"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const ratings = `userId,movieId,rating,timestamp
1,1,5,964982703
1,2,3,964981247
1,3,4,964982224
1,4,1,964983815
2,1,4,964982931
2,2,2,964982400
2,4,2,964980868
2,5,5,964982176
3,1,1,964984041
3,3,2,964984100
3,4,5,964983650
3,5,4,964981855
4,2,4,964980985
4,3,3,964982176
4,5,2,964981680
`

type CommandTestSuite struct {
	suite.Suite
	dir string
}

func (suite *CommandTestSuite) SetupSuite() {
	log.CloseLogger()
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func (suite *CommandTestSuite) SetupTest() {
	resetFlags(rootCommand)
	suite.dir = suite.T().TempDir()
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.dir, "ratings.csv"), []byte(ratings), 0644))
}

func (suite *CommandTestSuite) execute(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCommand.SetOut(&buf)
	rootCommand.SetArgs(append(args,
		"--dataset", filepath.Join(suite.dir, "ratings.csv"),
		"--output-dir", filepath.Join(suite.dir, "results"),
		"--debug"))
	err := rootCommand.Execute()
	return buf.String(), err
}

func (suite *CommandTestSuite) TestInfo() {
	out, err := suite.execute("info")
	suite.NoError(err)
	suite.Contains(out, "Ratings: 15, users: 4, items: 5")
}

func (suite *CommandTestSuite) TestPredict() {
	out, err := suite.execute("predict", "4", "1")
	suite.NoError(err)
	suite.Contains(out, "Predicted rating for user 4 on item 1")

	_, err = suite.execute("predict", "9", "1")
	suite.True(errors.Is(err, errors.NotFound))
	_, err = suite.execute("predict", "x", "1")
	suite.True(errors.Is(err, errors.NotValid))
}

func (suite *CommandTestSuite) TestSimilarity() {
	out, err := suite.execute("similarity", "1", "1", "--similarity", "jaccard")
	suite.NoError(err)
	suite.Contains(out, "1.00000000")
}

func (suite *CommandTestSuite) TestRecommendWithFilter() {
	_, err := suite.execute("recommend", "1", "--filter", "score >=")
	suite.True(errors.Is(err, errors.NotValid))
	_, err = suite.execute("recommend", "1", "--filter", "item == 5")
	suite.NoError(err)
}

func (suite *CommandTestSuite) TestGroup() {
	_, err := suite.execute("group", "1", "1")
	suite.True(errors.Is(err, errors.NotValid))
	_, err = suite.execute("group", "1", "7")
	suite.True(errors.Is(err, errors.NotFound))
	_, err = suite.execute("group", "1", "2", "--strategy", "median")
	suite.True(errors.Is(err, errors.NotSupported))
	out, err := suite.execute("group", "1", "2", "--strategy", "consensus")
	suite.NoError(err)
	suite.Contains(out, "consensus, round 1")
}

func (suite *CommandTestSuite) TestDisagreement() {
	out, err := suite.execute("disagreement", "1", "2", "--item", "1")
	suite.NoError(err)
	suite.Contains(out, "1.00000000")
}

func (suite *CommandTestSuite) TestSequential() {
	out, err := suite.execute("sequential", "1", "2", "3", "4", "--rounds", "2", "--limit", "1")
	suite.NoError(err)
	suite.Contains(out, "Round 2 for group")
	suite.Contains(out, "Rounds recorded for group {1, 2, 3, 4}: 2")
}

func (suite *CommandTestSuite) TestExport() {
	out, err := suite.execute("export", "1", "--output-format", "csv")
	suite.NoError(err)
	suite.Contains(out, "prediction_evaluation_user_1")
	for _, name := range []string{
		"user_similarity_matrix_pearson.csv",
		"most_similar_10_users_for_user_1_pearson.csv",
		"most_relevant_10_items_for_user_1_pearson.csv",
		"prediction_evaluation_user_1.csv",
	} {
		_, err = os.Stat(filepath.Join(suite.dir, "results", name))
		suite.NoError(err, name)
	}
}

func TestCommand(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func TestParseIds(t *testing.T) {
	ids, err := parseIds([]string{"3", "1"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids)
	_, err = parseIds([]string{"1", "a"})
	assert.True(t, errors.Is(err, errors.NotValid))
}
