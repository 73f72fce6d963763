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
Package solver is a small finite-domain constraint solver.

Variables range over dense integer domains {0, ..., n-1}. Constraints are
propagated to a fixed point at every node of a depth-first search, and
solutions are delivered one at a time through a callback, so that a caller
can keep the best one and stop whenever it likes.

A Pruner installed with WithPruner turns the enumeration into
branch-and-bound: it sees the narrowed domains of every node and may cut the
subtree when nothing below can improve on what the caller already has.
*/
package solver
