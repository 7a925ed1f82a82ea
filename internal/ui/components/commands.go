package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned by ParseCommand for a blank line.
var ErrEmptyCommand = errors.New("empty command")

// Command is one palette verb. MinArgs is checked before dispatch; the last
// argument named in Args may span several words.
type Command struct {
	Name    string
	Args    string
	MinArgs int
	Summary string
}

func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands is the palette vocabulary. app.Model.executePalette dispatches on
// these names.
var Commands = []Command{
	{Name: "course:add", Args: "<code> <topic>", MinArgs: 2, Summary: "add a course"},
	{Name: "course:delete", Summary: "delete the selected course and its sessions"},
	{Name: "course:shuffle", Summary: "pick a random course"},
	{Name: "session:start", Summary: "start studying the selected course"},
	{Name: "session:end", Summary: "end the active session"},
	{Name: "session:export", Args: "<dir>", MinArgs: 1, Summary: "write session notes"},
	{Name: "timer:start", Summary: "start the countdown"},
	{Name: "timer:pause", Summary: "pause the countdown"},
	{Name: "timer:reset", Summary: "back to a fresh work phase"},
	{Name: "timer:skip", Summary: "finish the current phase now"},
	{Name: "timer:switch", Args: "<work|break>", MinArgs: 1, Summary: "relabel the countdown"},
	{Name: "timer:set", Args: "<work-minutes> <break-minutes>", MinArgs: 2, Summary: "change phase lengths"},
	{Name: "remind:add", Args: "<due> <title>", MinArgs: 2, Summary: "due as +25m or 2026-03-02T15:04"},
	{Name: "remind:delete", Summary: "delete the selected reminder"},
	{Name: "xp:award", Args: "<amount>", MinArgs: 1, Summary: "grant experience"},
	{Name: "notify:test", Summary: "send a test notification"},
}

// Invocation is a parsed palette line.
type Invocation struct {
	Command Command
	Args    []string
}

func (inv Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Rest joins the arguments from i onward with single spaces.
func (inv Invocation) Rest(i int) string {
	if i >= len(inv.Args) {
		return ""
	}
	return strings.Join(inv.Args[i:], " ")
}

// ParseCommand resolves the verb case-insensitively and checks the argument
// count against the command's usage.
func ParseCommand(input string) (Invocation, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Invocation{}, ErrEmptyCommand
	}
	cmd, ok := Lookup(fields[0])
	if !ok {
		return Invocation{}, fmt.Errorf("unknown command: %s", fields[0])
	}
	args := fields[1:]
	if len(args) < cmd.MinArgs {
		return Invocation{}, fmt.Errorf("usage: %s", cmd.Usage())
	}
	return Invocation{Command: cmd, Args: args}, nil
}

func Lookup(name string) (Command, bool) {
	name = strings.ToLower(name)
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Matching returns the commands whose name starts with prefix. Once the
// input carries arguments only the exact verb matches.
func Matching(input string) []Command {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	if verb, _, hasArgs := strings.Cut(input, " "); hasArgs {
		if c, ok := Lookup(verb); ok {
			return []Command{c}
		}
		return nil
	}
	var out []Command
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, input) {
			out = append(out, c)
		}
	}
	return out
}

// Complete extends a partial verb to the longest prefix shared by every
// match. A unique match with arguments gets a trailing space.
func Complete(input string) string {
	if strings.Contains(strings.TrimLeft(input, " "), " ") {
		return input
	}
	matches := Matching(input)
	switch len(matches) {
	case 0:
		return input
	case 1:
		if matches[0].Args != "" {
			return matches[0].Name + " "
		}
		return matches[0].Name
	}
	prefix := matches[0].Name
	for _, c := range matches[1:] {
		for !strings.HasPrefix(c.Name, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if len(prefix) < len(strings.TrimSpace(input)) {
		return input
	}
	return prefix
}
