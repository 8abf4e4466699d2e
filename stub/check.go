package stub

import (
	"regexp"
	"sort"
	"strings"
)

var (
	defName     = regexp.MustCompile(`^def ([A-Za-z_][A-Za-z0-9_]*)\(`)
	versionLine = regexp.MustCompile(`generated by cmdstub for version .*`)
)

// CheckResult lists how an existing stub differs from a fresh one
type CheckResult struct {
	Added         []string
	Removed       []string
	Changed       []string
	HeaderChanged bool
}

// UpToDate reports whether nothing but the version line differs
func (r CheckResult) UpToDate() bool {
	return !r.HeaderChanged && len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Check compares a previously written stub with a freshly generated one,
// ignoring the version recorded in the header.
func Check(existing, generated string) CheckResult {
	oldHeader, oldDecls := splitDeclarations(existing)
	newHeader, newDecls := splitDeclarations(generated)

	var result CheckResult
	result.HeaderChanged = versionLine.ReplaceAllString(oldHeader, "") != versionLine.ReplaceAllString(newHeader, "")

	for name, decl := range newDecls {
		old, ok := oldDecls[name]
		switch {
		case !ok:
			result.Added = append(result.Added, name)
		case old != decl:
			result.Changed = append(result.Changed, name)
		}
	}
	for name := range oldDecls {
		if _, ok := newDecls[name]; !ok {
			result.Removed = append(result.Removed, name)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)
	return result
}

// splitDeclarations separates the header from the declarations and groups
// declaration text by command name. A declaration starts at a column-zero
// decorator or def line.
func splitDeclarations(text string) (string, map[string]string) {
	decls := make(map[string]string)
	var header strings.Builder
	var pending, current strings.Builder
	name := ""
	inHeader := true

	flush := func() {
		if name != "" {
			decls[name] += current.String()
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "@"):
			if !inHeader && pending.Len() == 0 {
				flush()
				name = ""
			}
			inHeader = false
			pending.WriteString(line + "\n")
		case strings.HasPrefix(line, "def "):
			inHeader = false
			if pending.Len() == 0 {
				flush()
			}
			if m := defName.FindStringSubmatch(line); m != nil {
				name = m[1]
			}
			current.WriteString(pending.String())
			pending.Reset()
			current.WriteString(line + "\n")
		case inHeader:
			header.WriteString(line + "\n")
		default:
			current.WriteString(line + "\n")
		}
	}
	flush()
	return header.String(), decls
}
