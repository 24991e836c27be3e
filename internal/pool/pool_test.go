// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/go-a2a/weather-agent-team/internal/pool"
)

type counter struct {
	n int
}

func TestPool(t *testing.T) {
	p := pool.New(func() *counter { return &counter{} }, func(c *counter) { c.n = 0 })

	c := p.Get()
	c.n = 42
	p.Put(c)

	if c.n != 0 {
		t.Errorf("Put() left n = %d, want 0", c.n)
	}
	if got := p.Get(); got.n != 0 {
		t.Errorf("Get() returned n = %d, want 0", got.n)
	}
}

func TestBuffer(t *testing.T) {
	buf := pool.Buffer.Get()
	buf.WriteString("Hello, ")
	buf.WriteString("Ann!")
	got := buf.String()
	pool.Buffer.Put(buf)

	if got != "Hello, Ann!" {
		t.Errorf("String() = %q, want %q", got, "Hello, Ann!")
	}
	if buf.Len() != 0 {
		t.Errorf("Put() left %d bytes in the buffer", buf.Len())
	}
}
