package stub

import (
	"regexp"
	"strings"

	"github.com/teranos/cmdstub/docs"
)

// trailing C++ header reference, e.g. "\nMFnMesh.h"
var trailingHeaderFile = regexp.MustCompile(`\n[A-Za-z]+\.h$`)

// ComposeDocstring builds the docstring body for a documented command
func ComposeDocstring(doc *docs.CommandDocumentation) string {
	if doc == nil {
		return ""
	}

	desc := strings.TrimSpace(doc.Description)
	for strings.Contains(desc, "\n\n") {
		desc = strings.ReplaceAll(desc, "\n\n", "\n")
	}
	desc = strings.TrimSpace(trailingHeaderFile.ReplaceAllString(desc, ""))
	desc = strings.ReplaceAll(desc, "\n", "\n\n\t")
	desc = escapeLoneBackslashes(desc)
	desc = strings.ReplaceAll(desc, `"""`, `\"\"\"`)
	if strings.HasSuffix(desc, `"`) {
		desc = desc[:len(desc)-1] + `\"`
	}

	var sb strings.Builder
	sb.WriteString(desc)

	if len(doc.Flags) > 0 {
		var params strings.Builder
		params.WriteString("\n\n\t# Parameters")
		for _, flag := range doc.Flags {
			flagDesc := strings.TrimSpace(flag.Description)
			flagDesc = strings.ReplaceAll(flagDesc, `\`, `\\`)
			flagDesc = strings.ReplaceAll(flagDesc, `"""`, `\"\"\"`)
			flagDesc = strings.ReplaceAll(flagDesc, "\n", "\n\t\t\t")
			params.WriteString("\n\t\t- ")
			params.WriteString(flag.NameLong)
			params.WriteString(": ")
			params.WriteString(flagDesc)
			params.WriteString("\n")
		}
		sb.WriteString(strings.TrimRight(params.String(), " \t\n"))
	}

	if hasReturnDescriptions(doc.Returns) {
		sb.WriteString("\n\n\t# Returns")
		for _, rv := range doc.Returns {
			sb.WriteString("\n\t\t- ")
			sb.WriteString(rv.Type)
			sb.WriteString(": ")
			sb.WriteString(strings.ReplaceAll(strings.TrimSpace(rv.Description), "\n", "\n\t\t"))
		}
	}

	sb.WriteString("\n\n\t")
	if doc.Undoable {
		sb.WriteString("This command is undoable")
	} else {
		sb.WriteString("This command is **NOT undoable**")
	}
	return sb.String()
}

func hasReturnDescriptions(returns []docs.ReturnValue) bool {
	for _, rv := range returns {
		if strings.TrimSpace(rv.Description) != "" {
			return true
		}
	}
	return false
}
