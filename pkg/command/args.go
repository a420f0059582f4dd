// SPDX-License-Identifier: MPL-2.0

package command

import "github.com/treecli/treecli/pkg/types"

// Args holds the parsed values of a leaf command's declared parameters,
// keyed by parameter name. Nothing else is ever stored in it.
type Args map[string]any

// Get returns the value of name as T.
func Get[T any](a Args, name string) (T, bool) {
	v, ok := a[name].(T)
	return v, ok
}

// Has reports whether name has a value.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Int returns the int value of name, or 0.
func (a Args) Int(name string) int {
	v, _ := Get[int](a, name)
	return v
}

// Float returns the float64 value of name, or 0.
func (a Args) Float(name string) float64 {
	v, _ := Get[float64](a, name)
	return v
}

// String returns the string value of name, or "".
func (a Args) String(name string) string {
	v, _ := Get[string](a, name)
	return v
}

// Bool returns the bool value of name, or false.
func (a Args) Bool(name string) bool {
	v, _ := Get[bool](a, name)
	return v
}

// Bytes returns the []byte value of name, or nil.
func (a Args) Bytes(name string) []byte {
	v, _ := Get[[]byte](a, name)
	return v
}

// Path returns the path value of name, or "".
func (a Args) Path(name string) types.FilesystemPath {
	v, _ := Get[types.FilesystemPath](a, name)
	return v
}
