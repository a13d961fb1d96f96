package command

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryOrder is the order categories appear in help output.
var categoryOrder = []string{CategorySetup, CategoryTurn, CategoryInfo, CategorySystem}

// FormatHelp renders every command grouped by category.
func FormatHelp(r *Registry) string {
	byCat := r.CommandsByCategory()
	var b strings.Builder
	for _, cat := range categoryOrder {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s commands:\n", cases.Title(language.English).String(cat))
		for _, cmd := range cmds {
			usage := cmd.Name
			if cmd.Usage != "" {
				usage += " " + cmd.Usage
			}
			line := fmt.Sprintf("  %-40s %s", usage, cmd.Help)
			if len(cmd.Aliases) > 0 {
				line += fmt.Sprintf(" (aliases: %s)", strings.Join(cmd.Aliases, ", "))
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
