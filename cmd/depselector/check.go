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
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/depselector/pkg/action"
	"github.com/rancher-sandbox/depselector/pkg/eyecandy"
)

const checkDesc = `
Check that every package of an index can be resolved on its own.

Each package is used as a run list by itself. Dependencies on unknown
packages, or constraints no version satisfies, are reported as
configuration errors; packages whose dependencies conflict are reported as
unsatisfiable.
`

type checkOptions struct {
	searchOptions
	index string
}

func newCheckCmd(logger log.Logger) *cobra.Command {
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "report packages of an index that cannot be resolved",
		Long:  checkDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return o.run(contextOf(cmd), wInfo, logger)
		},
	}

	cmd.Flags().StringVar(&o.index, "index", "", "path to the package index (YAML or TOML)")
	_ = cmd.MarkFlagRequired("index")
	bindSearchFlags(cmd, &o.searchOptions)

	return cmd
}

func (o *checkOptions) run(ctx context.Context, out io.Writer, logger log.Logger) error {
	cfg, err := loadConfiguration(o.index, logger)
	if err != nil {
		return err
	}
	client := action.NewResolve(cfg)
	if err := o.apply(client); err != nil {
		return err
	}

	// Packages only referenced as dependencies have no versions; their
	// dependents report them.
	var requests []action.Request
	for _, p := range cfg.Graph.Packages() {
		if p.Len() > 0 {
			requests = append(requests, action.Request{Name: p.Name(), RunList: action.RunList{{Name: p.Name()}}})
		}
	}
	responses := client.RunAll(ctx, requests, o.workers)

	table := uitable.New()
	table.AddRow("PACKAGE", "STATUS", "DETAIL")
	problems := 0
	for _, resp := range responses {
		status, detail := checkStatus(resp.Err)
		if resp.Err != nil {
			problems++
		}
		table.AddRow(resp.Name, status, detail)
	}

	if _, err := fmt.Fprintln(out, table.String()); err != nil {
		return err
	}
	if problems > 0 {
		return errors.Errorf("%d of %d packages cannot be resolved", problems, len(responses))
	}
	logger.Info(eyecandy.ESPrintf(settings.NoEmojis, ":white_check_mark:all %d packages can be resolved", len(responses)))
	return nil
}

func checkStatus(err error) (status, detail string) {
	var cerr *action.ConfigurationError
	switch {
	case err == nil:
		return "ok", ""
	case errors.As(err, &cerr):
		return "configuration error", cerr.Error()
	case errors.Is(err, action.ErrUnsatisfiable):
		return "unsatisfiable", "dependencies conflict"
	default:
		return "error", err.Error()
	}
}
