// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed object pooling.
//
//	buf := pool.Buffer.Get()
//	defer pool.Buffer.Put(buf)
//
//	for _, part := range content.Parts {
//		buf.WriteString(part.Text)
//	}
//	return buf.String()
package pool
