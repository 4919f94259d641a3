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
package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id     int
	marked bool
}

func (p *item) Mark()        { p.marked = true }
func (p *item) Unmark()      { p.marked = false }
func (p *item) Marked() bool { return p.marked }

func items(n int) []*item {
	var r = make([]*item, n)
	//
	for i := range r {
		r[i] = &item{id: i}
	}
	//
	return r
}

func drain(wl Worklist[*item]) []int {
	var ids []int
	//
	for !wl.Empty() {
		ids = append(ids, wl.Get().id)
	}
	//
	return ids
}

func Test_Lifo_00(t *testing.T) {
	wl := NewLifo[*item]()
	xs := items(3)
	//
	for _, x := range xs {
		assert.True(t, wl.Put(x))
	}
	// No duplicates
	assert.False(t, wl.Put(xs[1]))
	assert.Equal(t, uint(3), wl.Len())
	assert.Equal(t, []int{2, 1, 0}, drain(wl))
	// Everything unmarked once removed
	for _, x := range xs {
		assert.False(t, x.Marked())
	}
}

func Test_Fifo_00(t *testing.T) {
	wl := NewFifo[*item]()
	xs := items(4)
	//
	for _, x := range xs {
		wl.Put(x)
	}
	//
	assert.Equal(t, 0, wl.Get().id)
	// Re-adding an item already removed is permitted
	assert.True(t, wl.Put(xs[0]))
	assert.Equal(t, []int{1, 2, 3, 0}, drain(wl))
}

func Test_Priority_00(t *testing.T) {
	wl := NewPriority(func(a, b *item) bool { return a.id%3 < b.id%3 })
	//
	for _, x := range items(6) {
		wl.Put(x)
	}
	// ties broken by insertion order
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, drain(wl))
}

func Test_Worklist_Clear(t *testing.T) {
	for _, wl := range []Worklist[*item]{NewLifo[*item](), NewFifo[*item](), NewPriority(func(a, b *item) bool { return a.id < b.id })} {
		xs := items(3)
		//
		for _, x := range xs {
			wl.Put(x)
		}
		//
		wl.Clear()
		assert.True(t, wl.Empty())
		//
		for _, x := range xs {
			assert.False(t, x.Marked())
		}
		//
		assert.Panics(t, func() { wl.Get() })
	}
}
