package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch is an auto|on|off flag value (--color, --ui). Bad values are
// rejected while cobra parses the command line.
type autoSwitch string

const (
	switchAuto autoSwitch = "auto"
	switchOn   autoSwitch = "on"
	switchOff  autoSwitch = "off"
)

func (s *autoSwitch) Set(value string) error {
	switch v := autoSwitch(strings.TrimSpace(strings.ToLower(value))); v {
	case switchAuto, switchOn, switchOff:
		*s = v
		return nil
	case "":
		*s = switchAuto
		return nil
	}
	return fmt.Errorf("expected auto|on|off, got %q", value)
}

func (s *autoSwitch) String() string { return string(*s) }

func (*autoSwitch) Type() string { return "auto|on|off" }

// enabled resolves auto: on only when f is a terminal.
func (s autoSwitch) enabled(f *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return isTerminal(f)
	}
}

func newSwitch(def autoSwitch) *autoSwitch {
	return &def
}
