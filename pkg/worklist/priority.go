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
	"container/heap"
)

// Priority is a worklist which always returns the least item according to a
// given ordering.  Ties are broken in favour of the item added first.
type Priority[T Markable] struct {
	queue priorityQueue[T]
}

// NewPriority constructs an empty priority worklist using a given "less than"
// comparison.
func NewPriority[T Markable](less func(T, T) bool) *Priority[T] {
	return &Priority[T]{priorityQueue[T]{less: less}}
}

// Put an item into this worklist.
func (p *Priority[T]) Put(item T) bool {
	if item.Marked() {
		return false
	}
	//
	item.Mark()
	heap.Push(&p.queue, entry[T]{item, p.queue.counter})
	p.queue.counter++
	//
	return true
}

// Get removes the least item from this worklist.
func (p *Priority[T]) Get() T {
	if len(p.queue.entries) == 0 {
		panic("cannot get from empty worklist")
	}
	//
	item := heap.Pop(&p.queue).(entry[T]).item
	item.Unmark()
	//
	return item
}

// Empty checks whether any items remain.
func (p *Priority[T]) Empty() bool {
	return len(p.queue.entries) == 0
}

// Len returns the number of items remaining.
func (p *Priority[T]) Len() uint {
	return uint(len(p.queue.entries))
}

// Clear removes (and unmarks) all items.
func (p *Priority[T]) Clear() {
	for _, e := range p.queue.entries {
		e.item.Unmark()
	}
	//
	p.queue.entries = nil
}

type entry[T any] struct {
	item T
	// Insertion order, used to break ties.
	seq uint64
}

// priorityQueue implements heap.Interface.
type priorityQueue[T any] struct {
	entries []entry[T]
	less    func(T, T) bool
	counter uint64
}

func (q *priorityQueue[T]) Len() int { return len(q.entries) }

func (q *priorityQueue[T]) Less(i, j int) bool {
	a, b := q.entries[i], q.entries[j]
	//
	if q.less(a.item, b.item) {
		return true
	} else if q.less(b.item, a.item) {
		return false
	}
	//
	return a.seq < b.seq
}

func (q *priorityQueue[T]) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
}

func (q *priorityQueue[T]) Push(x any) {
	q.entries = append(q.entries, x.(entry[T]))
}

func (q *priorityQueue[T]) Pop() any {
	var (
		n    = len(q.entries)
		item = q.entries[n-1]
	)
	//
	q.entries = q.entries[:n-1]
	//
	return item
}
