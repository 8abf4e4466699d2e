package stub

import (
	"strings"
)

// String renders the function without a docstring
func (f Function) String() string {
	return f.Render("")
}

// Render renders the function declaration. An empty docstring gives a
// one-line "...:" body.
func (f Function) Render(docstring string) string {
	var sb strings.Builder

	if f.Deprecated {
		sb.WriteString(`@deprecated("""`)
		sb.WriteString(escapeTripleQuoted(f.DeprecationMessage))
		sb.WriteString(`""")`)
		sb.WriteString("\n")
	}

	sb.WriteString("def ")
	sb.WriteString(f.Name)
	sb.WriteString("(")

	variadic := false
	for _, arg := range f.Positional {
		if arg.IsVariadic() {
			variadic = true
			break
		}
	}

	var params []string
	for _, arg := range f.Positional {
		params = append(params, arg.String())
	}
	// Without a variadic, positional parameters are positional-only and
	// keyword parameters keyword-only.
	if len(f.Positional) > 0 && !variadic {
		params = append(params, "/")
	}
	if len(f.Keyword) > 0 && !variadic {
		params = append(params, "*")
	}
	for _, arg := range f.Keyword {
		params = append(params, arg.String())
	}
	sb.WriteString(strings.Join(params, ","))

	sb.WriteString(")->")
	if f.ReturnType != "" {
		sb.WriteString(f.ReturnType)
	} else {
		sb.WriteString("Any")
	}
	sb.WriteString(":")

	if docstring != "" {
		sb.WriteString("\n\t\"\"\"")
		sb.WriteString(docstring)
		sb.WriteString("\"\"\"")
	} else {
		sb.WriteString("...")
	}
	return sb.String()
}

// String renders every signature of the command. A single signature
// carries the docstring itself; several are all marked @overload and
// followed by an untyped catch-all that carries the docstring.
func (c Command) String() string {
	switch len(c.Functions) {
	case 0:
		return ""
	case 1:
		return c.Functions[0].Render(c.Docstring)
	}

	parts := make([]string, 0, len(c.Functions)+1)
	for _, fn := range c.Functions {
		parts = append(parts, "@overload\n"+fn.String())
	}
	catchAll := Function{
		Name:       c.Name,
		Positional: []Argument{{Name: "args", Type: "Any", Kind: VarPositional}, {Name: "kwargs", Type: "Any", Kind: VarKeyword}},
		ReturnType: "Any",
	}
	parts = append(parts, catchAll.Render(c.Docstring))
	return strings.Join(parts, "\n")
}

// Render joins the header and every command declaration
func Render(header string, commands []Command) string {
	parts := make([]string, len(commands))
	for i, c := range commands {
		parts[i] = c.String()
	}
	return header + "\n" + strings.Join(parts, "\n")
}

func escapeTripleQuoted(s string) string {
	s = escapeLoneBackslashes(s)
	s = strings.ReplaceAll(s, `"""`, `\"\"\"`)
	if strings.HasSuffix(s, `"`) && !strings.HasSuffix(s, `\"`) {
		s = s[:len(s)-1] + `\"`
	}
	return s
}

// escapeLoneBackslashes doubles every backslash that is not already part
// of a run of backslashes.
func escapeLoneBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		sb.WriteByte(c)
		if c != '\\' {
			continue
		}
		prev := i > 0 && s[i-1] == '\\'
		next := i+1 < len(s) && s[i+1] == '\\'
		if !prev && !next {
			sb.WriteByte('\\')
		}
	}
	return sb.String()
}
