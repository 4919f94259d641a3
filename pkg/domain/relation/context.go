// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package relation provides binary relations over a finite universe
// {0,…,n-1} as a weight domain.  Combine is relational union whilst extend is
// relational composition.  Every relation carries the Context which defines
// its universe, rather than relying on a single process-wide universe.
package relation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrNegativeSize is returned when a context is requested for a negative
	// number of values.
	ErrNegativeSize = errors.New("negative universe size")
	// ErrOutOfRange is returned when constructing a relation involving a
	// value outside the universe.
	ErrOutOfRange = errors.New("value out of range")
)

// Context defines the universe of values over which relations are formed.
// Relations from different contexts cannot be mixed.
type Context struct {
	size uint
	// Cached identity relation
	id Weight
	// Cached empty relation
	empty Weight
}

// NewContext constructs a universe with a given number of values.
func NewContext(size int) (*Context, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, size)
	}
	//
	ctx := &Context{size: uint(size)}
	ctx.empty = Weight{ctx, ctx.emptyRows()}
	//
	rows := ctx.emptyRows()
	for i := range rows {
		rows[i].Set(uint(i))
	}
	//
	ctx.id = Weight{ctx, rows}
	//
	return ctx, nil
}

// Size returns the number of values in this universe.
func (c *Context) Size() uint {
	return c.size
}

// Empty returns the empty relation (i.e. zero).
func (c *Context) Empty() Weight {
	return c.empty
}

// Id returns the identity relation (i.e. one).
func (c *Context) Id() Weight {
	return c.id
}

// Make constructs the relation {(from,to)}.
func (c *Context) Make(from, to int) (Weight, error) {
	return c.MakeAll([2]int{from, to})
}

// MakeAll constructs the relation containing exactly the given pairs.
func (c *Context) MakeAll(pairs ...[2]int) (Weight, error) {
	rows := c.emptyRows()
	//
	for _, p := range pairs {
		if err := c.check(p[0]); err != nil {
			return c.empty, err
		} else if err := c.check(p[1]); err != nil {
			return c.empty, err
		}
		//
		rows[p[0]].Set(uint(p[1]))
	}
	//
	return Weight{c, rows}, nil
}

// AddVar constructs the relation mapping every value to v.
func (c *Context) AddVar(v int) (Weight, error) {
	if err := c.check(v); err != nil {
		return c.empty, err
	}
	//
	rows := c.emptyRows()
	for i := range rows {
		rows[i].Set(uint(v))
	}
	//
	return Weight{c, rows}, nil
}

// SubVar constructs the relation mapping every value to anything other than
// v.
func (c *Context) SubVar(v int) (Weight, error) {
	if err := c.check(v); err != nil {
		return c.empty, err
	}
	//
	rows := c.emptyRows()
	for i := range rows {
		for j := uint(0); j < c.size; j++ {
			if j != uint(v) {
				rows[i].Set(j)
			}
		}
	}
	//
	return Weight{c, rows}, nil
}

// Parse a relation written as a set of pairs, such as "{(0,1),(1,2)}".  The
// strings "id" and "{}" denote the identity and empty relations respectively.
func (c *Context) Parse(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	//
	switch s {
	case "id", "1":
		return c.id, nil
	case "{}", "0", "":
		return c.empty, nil
	}
	//
	body := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	pairs := make([][2]int, 0)
	//
	for _, item := range strings.Split(body, ")") {
		item = strings.Trim(strings.TrimSpace(item), ",")
		item = strings.TrimSpace(item)
		//
		if item == "" {
			continue
		} else if !strings.HasPrefix(item, "(") {
			return c.empty, fmt.Errorf("invalid relation %q", s)
		}
		//
		fields := strings.Split(strings.TrimPrefix(item, "("), ",")
		if len(fields) != 2 {
			return c.empty, fmt.Errorf("invalid relation %q", s)
		}
		//
		from, err1 := strconv.Atoi(strings.TrimSpace(fields[0]))
		to, err2 := strconv.Atoi(strings.TrimSpace(fields[1]))
		//
		if err1 != nil || err2 != nil {
			return c.empty, fmt.Errorf("invalid relation %q", s)
		}
		//
		pairs = append(pairs, [2]int{from, to})
	}
	//
	return c.MakeAll(pairs...)
}

func (c *Context) check(v int) error {
	if v < 0 || uint(v) >= c.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, v, c.size)
	}
	//
	return nil
}

func (c *Context) emptyRows() []*bitset.BitSet {
	rows := make([]*bitset.BitSet, c.size)
	//
	for i := range rows {
		rows[i] = bitset.New(c.size)
	}
	//
	return rows
}
