// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"sync"
)

// Pool is a strongly-typed [sync.Pool].
//
// Values are reset before they go back into the pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a new [Pool] that constructs values with fn and clears them with reset.
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// Buffer pools the buffers that response text is joined in.
//
// The result must be read with [bytes.Buffer.String] before the buffer is put back.
var Buffer = New(func() *bytes.Buffer {
	return new(bytes.Buffer)
}, (*bytes.Buffer).Reset)
