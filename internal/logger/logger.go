// SPDX-License-Identifier: MPL-2.0

// Package logger builds the charmbracelet/log logger used by treecli
// programs.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level (debug, info, warn
// or error), without timestamps. An empty level means warn.
func New(w io.Writer, level string) (*log.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: false,
		Prefix:          "treecli",
	})
	l.SetStyles(styles())
	return l, nil
}

// styles highlights the keys the command builder logs with.
func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Keys["path"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	s.Values["path"] = lipgloss.NewStyle().Bold(true)
	s.Keys["name"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	s.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	return s
}
