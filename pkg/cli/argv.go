// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// maxFileDepth bounds nested @file references.
const maxFileDepth = 8

// negativeNumber matches tokens that look like flags but are values.
var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// expandFiles replaces every token starting with prefix by the arguments
// read from the named file. File contents are split like shell words, so
// quoting works and one file may hold several arguments per line.
func expandFiles(argv []string, prefix string, depth int) ([]string, error) {
	if prefix == "" {
		return argv, nil
	}
	out := make([]string, 0, len(argv))
	for i, tok := range argv {
		if tok == "--" {
			return append(out, argv[i:]...), nil
		}
		if !strings.HasPrefix(tok, prefix) || len(tok) == len(prefix) {
			out = append(out, tok)
			continue
		}
		if depth >= maxFileDepth {
			return nil, fmt.Errorf("argument file %s: nested too deeply", tok)
		}
		path := strings.TrimPrefix(tok, prefix)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read argument file: %w", err)
		}
		fields, err := shell.Fields(string(data), nil)
		if err != nil {
			return nil, fmt.Errorf("parse argument file %s: %w", path, err)
		}
		nested, err := expandFiles(fields, prefix, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// expandGreedy rewrites "--xs 1 2 3" into "--xs=1 --xs=2 --xs=3" for every
// one-or-more argument of the command being addressed, so pflag sees one
// value per occurrence. Values run until the next flag or "--"; negative
// numbers count as values.
func expandGreedy(root *cobraParser, argv []string) []string {
	out := make([]string, 0, len(argv))
	cur := root
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		switch {
		case tok == "--":
			return append(out, argv[i:]...)
		case !strings.HasPrefix(tok, "-"):
			if child, ok := cur.children[tok]; ok {
				cur = child
			}
			out = append(out, tok)
		case strings.HasPrefix(tok, "--") && !strings.Contains(tok, "="):
			a, ok := cur.lookup(tok[2:])
			switch {
			case !ok:
				out = append(out, tok)
			case !a.value.multi:
				// the next token is this flag's value, never a subcommand
				out = append(out, tok)
				if i+1 < len(argv) {
					out = append(out, argv[i+1])
					i++
				}
			default:
				j := i + 1
				for j < len(argv) && isValue(argv[j]) {
					out = append(out, tok+"="+argv[j])
					j++
				}
				if j == i+1 {
					// no values: let pflag report the missing argument
					out = append(out, tok)
				}
				i = j - 1
			}
		default:
			out = append(out, tok)
		}
	}
	return out
}

func isValue(tok string) bool {
	if tok == "--" {
		return false
	}
	return !strings.HasPrefix(tok, "-") || negativeNumber.MatchString(tok)
}
