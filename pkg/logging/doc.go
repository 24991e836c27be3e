// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging carries a [*slog.Logger] in a [context.Context].
//
// Programs install their logger once:
//
//	ctx = logging.NewContext(ctx, logger)
//
// and code that only has the context retrieves it:
//
//	logging.FromContext(ctx).DebugContext(ctx, "validating agent", "label", label)
package logging
