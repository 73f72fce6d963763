/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/depselector/internal/test"
	"github.com/rancher-sandbox/depselector/pkg/cli"
)

// cmdTestCase describes a test case run through the root command.
type cmdTestCase struct {
	name string
	cmd  string
	// golden is compared with the output of a successful command.
	golden string
	// contains are substrings expected in the output, or in the error
	// when wantError is set.
	contains  []string
	wantError bool
	// Number of repeats (in case a feature was previously flaky and the test checks
	// it's now stably producing identical results). 0 means test is run exactly once.
	repeat int
}

func runTestCmd(t *testing.T, tests []cmdTestCase) {
	t.Helper()
	for _, tt := range tests {
		for i := 0; i <= tt.repeat; i++ {
			t.Run(tt.name, func(t *testing.T) {
				defer resetEnv()()
				is := assert.New(t)

				t.Logf("running cmd (attempt %d): %s", i+1, tt.cmd)
				_, out, err := executeCommandStdinC(tt.cmd)
				if tt.wantError {
					if is.Error(err) {
						for _, s := range tt.contains {
							is.Contains(err.Error()+out, s)
						}
					}
					return
				}
				if !is.NoError(err, out) {
					return
				}
				for _, s := range tt.contains {
					is.Contains(out, s)
				}
				if tt.golden != "" {
					// The info logger may or may not terminate the last write.
					test.AssertGoldenString(t, strings.TrimRight(out, "\n")+"\n", tt.golden)
				}
			})
		}
	}
}

func executeCommandStdinC(cmd string) (*cobra.Command, string, error) {
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	logger := logcli.NewStandard()
	logger.InfoOut = buf
	logger.WarnOut = buf
	logger.ErrorOut = buf
	logger.DebugOut = ioutil.Discard

	root, err := newRootCmd(logger, args)
	if err != nil {
		return nil, "", err
	}

	root.SetOut(buf)
	root.SetErr(ioutil.Discard)
	root.SetArgs(args)

	oldStdin := os.Stdin

	c, err := root.ExecuteC()
	result := buf.String()
	os.Stdin = oldStdin

	return c, result, err
}

func resetEnv() func() {
	origEnv := os.Environ()
	return func() {
		os.Clearenv()
		for _, pair := range origEnv {
			kv := strings.SplitN(pair, "=", 2)
			os.Setenv(kv[0], kv[1])
		}
		settings = cli.New()
	}
}
