// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// tokenValue is a pflag.Value that records raw tokens; casting and
// validation run afterwards through the parameter's rule. Single-value flags
// keep the last occurrence, multi-value flags accumulate.
type tokenValue struct {
	typeName string
	multi    bool
	tokens   []string
	set      bool
}

var _ pflag.Value = (*tokenValue)(nil)

func (v *tokenValue) String() string { return strings.Join(v.tokens, " ") }

func (v *tokenValue) Set(s string) error {
	if v.multi {
		v.tokens = append(v.tokens, s)
	} else {
		v.tokens = []string{s}
	}
	v.set = true
	return nil
}

// Type is shown as the value placeholder in help.
func (v *tokenValue) Type() string {
	name := v.typeName
	if name == "bool" {
		// pflag hides the placeholder for "bool", which would read as a switch
		name = "boolean"
	}
	if v.multi {
		name += "..."
	}
	return name
}

func (v *tokenValue) reset() {
	v.tokens = nil
	v.set = false
}
