// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the command author. Issue holds longer Markdown guidance
// per error class, rendered with glamour when verbose output is requested.
package issue
