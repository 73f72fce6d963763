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

/*
Package cli describes the operating environment for the depselector CLI.

The settings are read from environment variables first and may then be
overridden by command line flags.
*/
package cli

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Debug indicates whether or not depselector is running in Debug mode.
	Debug bool
	// NoColors disables colorized output.
	NoColors bool
	// NoEmojis disables emojis in output.
	NoEmojis bool
}

// New returns settings populated from the environment.
func New() *EnvSettings {
	env := &EnvSettings{}
	env.Debug = envBool("DEPSELECTOR_DEBUG")
	env.NoColors = envBool("DEPSELECTOR_NOCOLORS")
	env.NoEmojis = envBool("DEPSELECTOR_NOEMOJIS")
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.BoolVar(&s.NoColors, "nocolor", s.NoColors, "disable colorized output")
	fs.BoolVar(&s.NoEmojis, "noemojis", s.NoEmojis, "disable emojis in output")
}

// EnvVars returns the environment variables the settings are read from,
// with their current values.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"DEPSELECTOR_DEBUG":    strconv.FormatBool(s.Debug),
		"DEPSELECTOR_NOCOLORS": strconv.FormatBool(s.NoColors),
		"DEPSELECTOR_NOEMOJIS": strconv.FormatBool(s.NoEmojis),
	}
}

func envBool(name string) bool {
	b, _ := strconv.ParseBool(os.Getenv(name))
	return b
}
