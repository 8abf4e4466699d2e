package stub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentString(t *testing.T) {
	tests := []struct {
		name string
		arg  Argument
		want string
	}{
		{"bare", Argument{Name: "arg"}, "arg"},
		{"typed", Argument{Name: "arg", Type: "str"}, "arg:str"},
		{"elided default", Argument{Name: "width", Type: "float", Default: Elided}, "width:float=..."},
		{"untyped default", Argument{Name: "flag", Default: Elided}, "flag=..."},
		{"var positional", Argument{Name: "args", Type: "Sequence[str]|str", Kind: VarPositional}, "*args:Sequence[str]|str"},
		{"var keyword", VarKwargs(), "**kwargs"},
		{"keyword escaped", Argument{Name: "from", Type: "str", Default: Elided}, "from_:str=..."},
		{"soft keyword untouched", Argument{Name: "type", Type: "str", Default: Elided}, "type:str=..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.arg.String())
		})
	}
}

func TestFunctionString(t *testing.T) {
	tests := []struct {
		name string
		fn   Function
		want string
	}{
		{
			name: "no arguments",
			fn:   Function{Name: "undo"},
			want: "def undo()->Any:...",
		},
		{
			name: "positional only",
			fn:   Function{Name: "select", Positional: []Argument{{Name: "arg", Type: "str", Default: Elided}}, ReturnType: "None"},
			want: "def select(arg:str=...,/)->None:...",
		},
		{
			name: "keyword only",
			fn:   Function{Name: "polyCube", Keyword: []Argument{{Name: "width", Type: "float", Default: Elided}}, ReturnType: "list[str]"},
			want: "def polyCube(*,width:float=...)->list[str]:...",
		},
		{
			name: "positional and keyword",
			fn: Function{
				Name:       "xform",
				Positional: []Argument{{Name: "arg1", Type: "str", Default: Elided}},
				Keyword:    []Argument{{Name: "query", Type: "Literal[True]"}, {Name: "translation", Type: "Literal[True]"}},
				ReturnType: "list[float]",
			},
			want: "def xform(arg1:str=...,/,*,query:Literal[True],translation:Literal[True])->list[float]:...",
		},
		{
			name: "variadic drops markers",
			fn: Function{
				Name:       "ls",
				Positional: []Argument{{Name: "args", Type: "Sequence[str]|str", Kind: VarPositional}},
				Keyword:    []Argument{{Name: "long", Type: "bool", Default: Elided}},
			},
			want: "def ls(*args:Sequence[str]|str,long:bool=...)->Any:...",
		},
		{
			name: "deprecated",
			fn: Function{
				Name:               "oldCmd",
				Positional:         []Argument{VarArgs(), VarKwargs()},
				Deprecated:         true,
				DeprecationMessage: `Use "newCmd"`,
			},
			want: "@deprecated(\"\"\"Use \"newCmd\\\"\"\"\")\ndef oldCmd(*args,**kwargs)->Any:...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn.String())
		})
	}
}

func TestFunctionRenderDocstring(t *testing.T) {
	fn := Function{Name: "ls", ReturnType: "list[str]"}
	assert.Equal(t, "def ls()->list[str]:\n\t\"\"\"List objects\"\"\"", fn.Render("List objects"))
}

func TestCommandString_Single(t *testing.T) {
	c := Command{
		Name:      "FOO",
		Docstring: "",
		Functions: []Function{{Name: "FOO", Positional: []Argument{VarArgs()}, ReturnType: "None"}},
	}
	assert.Equal(t, "def FOO(*args)->None:...", c.String())

	c.Docstring = "Does foo"
	assert.Equal(t, "def FOO(*args)->None:\n\t\"\"\"Does foo\"\"\"", c.String())
}

func TestCommandString_Overloads(t *testing.T) {
	c := Command{
		Name:      "polyCube",
		Docstring: "Create a cube",
		Functions: []Function{
			{Name: "polyCube", Keyword: []Argument{{Name: "width", Type: "float", Default: Elided}}, ReturnType: "list[str]"},
			{Name: "polyCube", Keyword: []Argument{{Name: "query", Type: "Literal[True]"}}, ReturnType: "Any"},
		},
	}

	want := strings.Join([]string{
		"@overload",
		"def polyCube(*,width:float=...)->list[str]:...",
		"@overload",
		"def polyCube(*,query:Literal[True])->Any:...",
		"def polyCube(*args:Any,**kwargs:Any)->Any:",
		"\t\"\"\"Create a cube\"\"\"",
	}, "\n")
	assert.Equal(t, want, c.String())
	assert.Equal(t, 2, strings.Count(c.String(), "@overload"))
}

func TestRender(t *testing.T) {
	header := Header("2025")
	out := Render(header, []Command{
		{Name: "a", Functions: []Function{{Name: "a"}}},
		{Name: "b", Functions: []Function{{Name: "b"}}},
	})

	assert.True(t, strings.HasPrefix(out, header+"\n"))
	assert.True(t, strings.HasSuffix(out, "def a()->Any:...\ndef b()->Any:..."))
}

func TestHeader(t *testing.T) {
	h := Header("2025.3")
	assert.Contains(t, h, "for version 2025.3")
	assert.NotContains(t, h, VersionPlaceholder)
	assert.Contains(t, h, "multiuse: TypeAlias = Union[Sequence[T], T]")
}

func TestEscapeLoneBackslashes(t *testing.T) {
	assert.Equal(t, `a\\b`, escapeLoneBackslashes(`a\b`))
	assert.Equal(t, `a\\b`, escapeLoneBackslashes(`a\\b`))
	assert.Equal(t, `\\n and \\\ `, escapeLoneBackslashes(`\n and \\\ `))
	assert.Equal(t, "plain", escapeLoneBackslashes("plain"))
}
