// SPDX-License-Identifier: MPL-2.0

// Package testutil provides file and environment helpers for tests that
// fail the test on error instead of returning it.
package testutil
