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

package solver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
)

func ExampleSolver_EachSolution() {

	// app 1.0.0 (index 0) needs lib >= 2.0.0 (indices 1 and 2), app 2.0.0
	// (index 1) needs exactly lib 3.0.0 (index 2):
	m := NewModel()
	app := m.NewVariable("app", 2)
	lib := m.NewVariable("lib", 3)
	m.AddConstraint(NewImplication(app, 0, lib, []int{1, 2}))
	m.AddConstraint(NewImplication(app, 1, lib, []int{2}))
	m.BranchOn(app)

	// create our own Logger that satisfies impl/cli.Logger, but with a buffer for tests
	buf := new(bytes.Buffer)
	logger := logcli.NewStandard()
	logger.InfoOut = buf
	logger.WarnOut = buf
	logger.ErrorOut = buf
	logger.DebugOut = buf
	log.Current = logger

	s := New(m, WithValueOrder(ValuesDescending), WithLogger(logger))
	stats, _ := s.EachSolution(context.Background(), func(sol Solution) error {
		fmt.Println(sol)
		return nil
	})
	fmt.Println("solutions:", stats.Solutions)

	// Output:
	// app=1 lib=2
	// app=0 lib=2
	// app=0 lib=1
	// solutions: 3
}
