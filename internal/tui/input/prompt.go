// Package input parses the TUI command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Args        string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Suggestions stop once the user has typed past the command name.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParseCommand splits "/name rest of line" into its lowercased name and
// trimmed argument. It returns false when input is not a slash command.
func ParseCommand(input string) (name, arg string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || len(trimmed) == 1 {
		return "", "", false
	}
	name, arg, _ = strings.Cut(trimmed, " ")
	return strings.ToLower(name), strings.TrimSpace(arg), true
}
