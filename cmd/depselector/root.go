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
	"errors"
	"os"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var globalUsage = `Usage: depselector command

Picks one version of every package needed by a run list, staying as close
as possible to the versions currently in use.

Packages and their dependencies are read from an index file:

    apiVersion: v1
    entries:
      A:
        - version: 1.0.0
          dependencies:
            B: ">= 1.0.0, < 2.0.0"

Environment:

| Name                   | Description                              |
|------------------------|------------------------------------------|
| $DEPSELECTOR_DEBUG     | enable verbose output                    |
| $DEPSELECTOR_NOCOLORS  | disable colorized output                 |
| $DEPSELECTOR_NOEMOJIS  | disable emojis in output                 |
`

func newRootCmd(logger *logcli.Logger, args []string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "depselector",
		Short:        "Select package versions that satisfy a run list",
		Long:         globalUsage,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applySettings(logger)
		},
	}

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.AddCommand(
		newResolveCmd(logger),
		newCheckCmd(logger),
		newVersionCmd(logger),
	)

	flags.ParseErrorsWhitelist.UnknownFlags = true
	err := flags.Parse(args)

	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		log.Errorf("failed while parsing flags for %s: %s", args, err)

		os.Exit(1)
	}

	applySettings(logger)

	return cmd, nil
}

func applySettings(logger *logcli.Logger) {
	if settings.Debug {
		logger.Level = log.DebugLevel
	}
	if settings.NoColors {
		color.NoColor = true // disable colorized output
	}
}
