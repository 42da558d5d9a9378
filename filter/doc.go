// SPDX-License-Identifier: EPL-2.0

// Package filter holds the per-reader state variable filter and the
// output DC blocker.
package filter
