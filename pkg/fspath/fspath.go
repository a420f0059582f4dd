// SPDX-License-Identifier: MPL-2.0

// Package fspath provides path/filepath and os helpers that accept and
// return types.FilesystemPath.
package fspath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/treecli/treecli/pkg/types"
)

// JoinStr joins a typed base path with raw segments such as file names.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Ext returns the lower-cased extension of p, including the dot.
func Ext(p types.FilesystemPath) string {
	return strings.ToLower(filepath.Ext(string(p)))
}

// IsFile reports whether p exists and is not a directory.
func IsFile(p types.FilesystemPath) bool {
	info, err := os.Stat(string(p))
	return err == nil && !info.IsDir()
}
