package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the text after the command with runs of whitespace collapsed
	// to single spaces, so multi-word room and item names compare cleanly.
	RawArgs string
}

// Parse splits a text line into a command and arguments. Any whitespace,
// including tabs, separates words.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ParseResult{}
	}

	result := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		result.Args = words[1:]
		result.RawArgs = strings.Join(result.Args, " ")
	}
	return result
}
