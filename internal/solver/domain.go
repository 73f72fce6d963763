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
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Domain is an immutable set of candidate values for a variable, over the
// range [0, Size()). Values are densely packed version indices, so domains
// are small and a bitset keeps membership and intersection cheap.
//
// Operations never modify the receiver; they return a new Domain. This lets
// search states share domains with their parents.
type Domain struct {
	size  int
	words []uint64
}

// NewDomain returns the full domain {0, ..., size-1}.
func NewDomain(size int) Domain {
	if size < 0 {
		panic(fmt.Sprintf("solver: negative domain size %d", size))
	}
	d := Domain{size: size, words: make([]uint64, (size+63)/64)}
	for i := range d.words {
		d.words[i] = ^uint64(0)
	}
	if r := size % 64; r != 0 {
		d.words[len(d.words)-1] = (uint64(1) << uint(r)) - 1
	}
	return d
}

// NewDomainFromValues returns the domain holding values, within [0, size).
// A value out of range is a programming error and panics.
func NewDomainFromValues(size int, values []int) Domain {
	if size < 0 {
		panic(fmt.Sprintf("solver: negative domain size %d", size))
	}
	d := Domain{size: size, words: make([]uint64, (size+63)/64)}
	for _, v := range values {
		if v < 0 || v >= size {
			panic(fmt.Sprintf("solver: value %d out of domain range [0,%d)", v, size))
		}
		d.words[v/64] |= uint64(1) << uint(v%64)
	}
	return d
}

// Size returns the width of the value range, not the number of values.
func (d Domain) Size() int {
	return d.size
}

// Count returns the number of values in the domain.
func (d Domain) Count() int {
	n := 0
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no value is left.
func (d Domain) Empty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Has reports whether v is in the domain.
func (d Domain) Has(v int) bool {
	if v < 0 || v >= d.size {
		return false
	}
	return d.words[v/64]&(uint64(1)<<uint(v%64)) != 0
}

// Min returns the smallest value, or -1 for an empty domain.
func (d Domain) Min() int {
	for i, w := range d.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// Max returns the largest value, or -1 for an empty domain.
func (d Domain) Max() int {
	for i := len(d.words) - 1; i >= 0; i-- {
		if w := d.words[i]; w != 0 {
			return i*64 + 63 - bits.LeadingZeros64(w)
		}
	}
	return -1
}

// IsSingleton reports whether exactly one value is left.
func (d Domain) IsSingleton() bool {
	return d.Count() == 1
}

// SingletonValue returns the only value of a singleton domain. It panics on
// any other domain.
func (d Domain) SingletonValue() int {
	if !d.IsSingleton() {
		panic(fmt.Sprintf("solver: domain %s is not a singleton", d))
	}
	return d.Min()
}

// Remove returns the domain without v.
func (d Domain) Remove(v int) Domain {
	if !d.Has(v) {
		return d
	}
	out := d.clone()
	out.words[v/64] &^= uint64(1) << uint(v%64)
	return out
}

// Intersect returns the values present in both domains. Both domains must
// have the same size.
func (d Domain) Intersect(other Domain) Domain {
	if d.size != other.size {
		panic(fmt.Sprintf("solver: intersecting domains of size %d and %d", d.size, other.size))
	}
	out := d.clone()
	for i := range out.words {
		out.words[i] &= other.words[i]
	}
	return out
}

// Equal reports whether both domains hold the same values over the same
// range.
func (d Domain) Equal(other Domain) bool {
	if d.size != other.size {
		return false
	}
	for i := range d.words {
		if d.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Values returns the values in ascending order.
func (d Domain) Values() []int {
	values := make([]int, 0, d.Count())
	for i, w := range d.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			values = append(values, i*64+b)
			w &= w - 1
		}
	}
	return values
}

func (d Domain) clone() Domain {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return Domain{size: d.size, words: words}
}

func (d Domain) String() string {
	values := d.Values()
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(strs, ",") + "}"
}
