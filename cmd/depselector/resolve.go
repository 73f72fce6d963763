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
	"strings"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/depselector/pkg/action"
	"github.com/rancher-sandbox/depselector/pkg/eyecandy"
	"github.com/rancher-sandbox/depselector/pkg/repo"
)

const resolveDesc = `
Resolve a run list against a package index.

The run list is given either as arguments or in manifest files. Each
argument names a package, optionally followed by a version or constraint:

    $ depselector resolve --index index.yaml A B@1.0.0 'C >= 2.0.0, < 3.0.0'

Use '--current' to pass the versions in use today; the resolution changes as
few of them as possible.

Manifests carry their own run list and current versions:

    runlist:
      - A
      - B = 1.0.0
    current:
      A: 2.0.0

Several manifests are resolved concurrently with '-f' repeated.
`

type resolveOptions struct {
	searchOptions
	index     string
	current   string
	manifests []string
	outfmt    action.OutputMode
}

func newResolveCmd(logger log.Logger) *cobra.Command {
	o := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [PACKAGE[@VERSION|=CONSTRAINT]...]",
		Short: "select versions for a run list",
		Long:  resolveDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get an io.Writer compliant logger instance at the info level.
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return o.run(contextOf(cmd), wInfo, logger, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.index, "index", "", "path to the package index (YAML or TOML)")
	f.StringVar(&o.current, "current", "", "path to a file mapping package names to their current versions")
	f.StringArrayVarP(&o.manifests, "file", "f", nil, "resolve the run list of a manifest file (can be repeated)")
	_ = cmd.MarkFlagRequired("index")
	bindOutputFlag(cmd, &o.outfmt)
	bindSearchFlags(cmd, &o.searchOptions)

	return cmd
}

func (o *resolveOptions) run(ctx context.Context, out io.Writer, logger log.Logger, args []string) error {
	if len(o.manifests) > 0 && len(args) > 0 {
		return errors.New("a run list cannot be given both as arguments and with --file")
	}
	if len(o.manifests) == 0 && len(args) == 0 {
		return errors.New("nothing to resolve: give a run list or --file")
	}

	cfg, err := loadConfiguration(o.index, logger)
	if err != nil {
		return err
	}
	client := action.NewResolve(cfg)
	if err := o.apply(client); err != nil {
		return err
	}

	var current action.Baseline
	if o.current != "" {
		if current, err = repo.LoadBaseline(o.current); err != nil {
			return err
		}
	}

	if len(o.manifests) == 0 {
		rl, err := action.ParseRunList(args)
		if err != nil {
			return err
		}
		res, err := client.Run(ctx, rl, current)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, res.FormatOutput(o.outfmt))
		return err
	}

	requests, err := manifestRequests(o.manifests, current)
	if err != nil {
		return err
	}
	responses := client.RunAll(ctx, requests, o.workers)

	var sb strings.Builder
	failed := 0
	for _, resp := range responses {
		if resp.Err != nil {
			failed++
			sb.WriteString(eyecandy.ESPrintf(settings.NoEmojis, ":x:%s: %s\n", resp.Name, resp.Err))
			continue
		}
		sb.WriteString(eyecandy.ESPrintf(settings.NoEmojis, ":white_check_mark:%s\n", resp.Name))
		sb.WriteString(resp.Result.FormatOutput(o.outfmt))
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
	}
	if _, err := fmt.Fprint(out, sb.String()); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d manifests could not be resolved", failed, len(responses))
	}
	return nil
}

// manifestRequests loads every manifest. Versions from current fill in the
// packages a manifest has no current version for.
func manifestRequests(paths []string, current action.Baseline) ([]action.Request, error) {
	requests := make([]action.Request, 0, len(paths))
	for _, path := range paths {
		m, err := repo.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		rl, err := m.RunList()
		if err != nil {
			return nil, errors.Wrapf(err, "manifest %s", path)
		}
		b, err := m.Baseline()
		if err != nil {
			return nil, errors.Wrapf(err, "manifest %s", path)
		}
		for name, v := range current {
			if _, ok := b[name]; !ok {
				b[name] = v
			}
		}
		requests = append(requests, action.Request{Name: path, RunList: rl, Baseline: b})
	}
	return requests, nil
}

// loadConfiguration reads the index at path and builds the package graph.
func loadConfiguration(path string, logger log.Logger) (*action.Configuration, error) {
	index, err := repo.LoadIndexFile(path)
	if err != nil {
		return nil, err
	}
	inputs, err := index.Inputs()
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", path)
	}
	g, err := action.BuildWorld(inputs, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", path)
	}
	return action.NewConfiguration(g, logger), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
