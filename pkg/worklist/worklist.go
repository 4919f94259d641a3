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

// Package worklist provides the policies which determine the order in which a
// fixed point computation visits its items.  The correctness of a fixed point
// never depends upon the order chosen, only its performance does.
package worklist

// Markable is implemented by items which record whether they are currently
// held on a worklist.  This ensures an item is never held more than once.
type Markable interface {
	// Mark this item as being on a worklist.
	Mark()
	// Unmark this item, as it has been removed from a worklist.
	Unmark()
	// Marked checks whether this item is on a worklist.
	Marked() bool
}

// Worklist is a collection of pending items, where each item is held at most
// once.
type Worklist[T Markable] interface {
	// Put an item onto this worklist, returning true if it was added or false
	// if it was already present.
	Put(item T) bool
	// Get removes the next item from this worklist.  This will panic if the
	// worklist is empty.
	Get() T
	// Empty checks whether any items remain.
	Empty() bool
	// Len returns the number of items remaining.
	Len() uint
	// Clear removes all items from this worklist.
	Clear()
}

// ============================================================================
// LIFO
// ============================================================================

// Lifo is a worklist which returns the most recently added item first.  This is
// the default policy.
type Lifo[T Markable] struct {
	items []T
}

// NewLifo constructs an empty LIFO worklist.
func NewLifo[T Markable]() *Lifo[T] {
	return &Lifo[T]{}
}

// Put an item onto the top of this worklist.
func (p *Lifo[T]) Put(item T) bool {
	if item.Marked() {
		return false
	}
	//
	item.Mark()
	p.items = append(p.items, item)
	//
	return true
}

// Get removes the item on top of this worklist.
func (p *Lifo[T]) Get() T {
	var n = len(p.items)
	//
	if n == 0 {
		panic("cannot get from empty worklist")
	}
	//
	item := p.items[n-1]
	p.items = p.items[:n-1]
	item.Unmark()
	//
	return item
}

// Empty checks whether any items remain.
func (p *Lifo[T]) Empty() bool {
	return len(p.items) == 0
}

// Len returns the number of items remaining.
func (p *Lifo[T]) Len() uint {
	return uint(len(p.items))
}

// Clear removes (and unmarks) all items.
func (p *Lifo[T]) Clear() {
	for _, item := range p.items {
		item.Unmark()
	}
	//
	p.items = nil
}

// ============================================================================
// FIFO
// ============================================================================

// Fifo is a worklist which returns items in the order they were added.
type Fifo[T Markable] struct {
	items []T
	head  int
}

// NewFifo constructs an empty FIFO worklist.
func NewFifo[T Markable]() *Fifo[T] {
	return &Fifo[T]{}
}

// Put an item onto the back of this worklist.
func (p *Fifo[T]) Put(item T) bool {
	if item.Marked() {
		return false
	}
	//
	item.Mark()
	p.items = append(p.items, item)
	//
	return true
}

// Get removes the item at the front of this worklist.
func (p *Fifo[T]) Get() T {
	var empty T
	//
	if p.head == len(p.items) {
		panic("cannot get from empty worklist")
	}
	//
	item := p.items[p.head]
	p.items[p.head] = empty
	p.head++
	// Reclaim space once everything has been consumed.
	if p.head == len(p.items) {
		p.items = p.items[:0]
		p.head = 0
	}
	//
	item.Unmark()
	//
	return item
}

// Empty checks whether any items remain.
func (p *Fifo[T]) Empty() bool {
	return p.head == len(p.items)
}

// Len returns the number of items remaining.
func (p *Fifo[T]) Len() uint {
	return uint(len(p.items) - p.head)
}

// Clear removes (and unmarks) all items.
func (p *Fifo[T]) Clear() {
	for _, item := range p.items[p.head:] {
		item.Unmark()
	}
	//
	p.items = nil
	p.head = 0
}
