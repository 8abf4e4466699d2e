package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/cmdstub/docs"
	"github.com/teranos/cmdstub/stub"
	"github.com/teranos/cmdstub/typemap"
)

func newSynthesizer(t *testing.T, opts Options) *Synthesizer {
	t.Helper()
	tables, err := typemap.DefaultTables()
	require.NoError(t, err)
	return New(typemap.NewMapper(tables), opts)
}

func keywordNames(fn stub.Function) []string {
	var names []string
	for _, a := range fn.Keyword {
		names = append(names, a.Name)
	}
	return names
}

func keyword(t *testing.T, fn stub.Function, name string) stub.Argument {
	t.Helper()
	for _, a := range fn.Keyword {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("keyword %s not found in %v", name, keywordNames(fn))
	return stub.Argument{}
}

var positional = []stub.Argument{{Name: "arg", Type: "str", Default: stub.Elided}}

func TestFunctions_Undocumented(t *testing.T) {
	s := newSynthesizer(t, Options{})

	tests := []struct {
		name string
		want string
	}{
		{"SCENE", typemap.None},
		{"UV2", typemap.None},
		{"ls", typemap.Any},
		{"polyCube", typemap.Any},
		{"_123", typemap.Any},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fns := s.Functions(tt.name, nil, positional)
			require.Len(t, fns, 1)
			assert.Equal(t, tt.want, fns[0].ReturnType)
			assert.Empty(t, fns[0].Keyword)
			assert.Equal(t, positional, fns[0].Positional)
		})
	}
}

func TestFunctions_Obsolete(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Obsolete:        true,
		ObsoleteMessage: "Use dgdirty instead.",
		Queryable:       true,
		Editable:        true,
		Flags:           []docs.Flag{{NameLong: "name", NameShort: "n", ArgType: "string", Create: true}},
	}
	args := []stub.Argument{stub.VarArgs(), stub.VarKwargs()}

	fns := s.Functions("dgInfo", doc, args)
	require.Len(t, fns, 1)
	assert.True(t, fns[0].Deprecated)
	assert.Equal(t, "Use dgdirty instead.", fns[0].DeprecationMessage)
	assert.Empty(t, fns[0].Keyword)
	assert.Equal(t, args, fns[0].Positional)
}

func TestFunctions_NotQueryable(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Editable: true,
		Flags: []docs.Flag{
			{NameLong: "width", NameShort: "w", ArgType: "linear", Create: true, Edit: true, Query: true},
		},
	}

	fns := s.Functions("polyCube", doc, nil)
	require.Len(t, fns, 2)
	for _, fn := range fns {
		assert.False(t, fn.HasKeyword("query"))
	}
}

func TestFunctions_CreateEditQuery(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Undoable:  true,
		Queryable: true,
		Editable:  true,
		Returns:   []docs.ReturnValue{{Type: "string[]"}},
		Flags: []docs.Flag{
			{NameLong: "width", NameShort: "w", ArgType: "linear", Create: true, Edit: true, Query: true},
			{NameLong: "axis", NameShort: "ax", ArgType: "[linear, linear, linear]", Create: true, Edit: true, Query: true},
			{NameLong: "constructionHistory", NameShort: "ch", ArgType: "boolean", Create: true, Query: true,
				Description: "Turn the construction history on or off."},
			{NameLong: "name", NameShort: "n", ArgType: "string", Create: true, MultiUse: true},
			{NameLong: "numberOfVertices", NameShort: "nv", ArgType: "boolean", Query: true},
			{NameLong: "worldSpace", NameShort: "ws", ArgType: "boolean", Create: true,
				Description: "In query mode, report world space values."},
		},
	}

	fns := s.Functions("polyCube", doc, positional)
	// create, edit, bare query, one per query flag
	require.Len(t, fns, 7)

	create := fns[0]
	assert.Equal(t, []string{"width", "axis", "constructionHistory", "name", "worldSpace"}, keywordNames(create))
	assert.Equal(t, "list[str]", create.ReturnType)
	assert.Equal(t, stub.Argument{Name: "width", Type: "float", Default: stub.Elided}, create.Keyword[0])
	assert.Equal(t, "tuple[float, float, float]", create.Keyword[1].Type)
	assert.Equal(t, "bool", create.Keyword[2].Type)
	assert.Equal(t, "multiuse[str]", create.Keyword[3].Type)

	edit := fns[1]
	assert.Equal(t, []string{"edit", "width", "axis"}, keywordNames(edit))
	assert.Equal(t, stub.Argument{Name: "edit", Type: typemap.LiteralTrue}, edit.Keyword[0])
	assert.Empty(t, edit.ReturnType)

	bare := fns[2]
	assert.Equal(t, []string{"query", "worldSpace"}, keywordNames(bare))
	assert.Equal(t, typemap.Any, bare.ReturnType)

	width := fns[3]
	assert.Equal(t, []string{"query", "width", "worldSpace"}, keywordNames(width))
	assert.Equal(t, typemap.LiteralTrue, width.Keyword[1].Type)
	assert.Empty(t, width.Keyword[1].Default)
	assert.Equal(t, "float", width.ReturnType)

	assert.Equal(t, "tuple[float, float, float]", fns[4].ReturnType)
	assert.Equal(t, "bool", fns[5].ReturnType, "description does not mention querying")

	vertices := fns[6]
	assert.Equal(t, "numberOfVertices", vertices.Keyword[1].Name)
	assert.Equal(t, typemap.Any, vertices.ReturnType, "query-only flag")
}

func TestFunctions_GeneralModifierPhrase(t *testing.T) {
	s := newSynthesizer(t, Options{})

	tests := []struct {
		description string
		modifier    bool
	}{
		{"In query mode, this flag needs a value.", true},
		{"Only in query mode.", false},
		{"Sets the value.", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			doc := &docs.CommandDocumentation{
				Queryable: true,
				Flags: []docs.Flag{
					{NameLong: "history", NameShort: "h", ArgType: "boolean", Create: true, Query: true, Description: tt.description},
					{NameLong: "flag", NameShort: "f", ArgType: "boolean", Create: true, Description: tt.description},
				},
			}
			fns := s.Functions("cmd", doc, nil)

			assert.Equal(t, "bool", keyword(t, fns[0], "history").Type)
			bare := fns[1]
			assert.Equal(t, tt.modifier, bare.HasKeyword("flag"))
			// query flags never act as general modifiers
			assert.False(t, bare.HasKeyword("history"))
		})
	}
}

func TestFunctions_QueryBoolMentioningQuery(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Queryable: true,
		Flags: []docs.Flag{
			{NameLong: "state", NameShort: "st", ArgType: "boolean", Create: true, Query: true, Description: "When queried, returns the state name."},
			{NameLong: "visible", NameShort: "vis", ArgType: "boolean", Create: true, Query: true, Description: "Sets visibility."},
			{NameLong: "label", NameShort: "l", Create: true, Query: true},
		},
	}

	fns := s.Functions("cmd", doc, nil)
	require.Len(t, fns, 5)
	assert.Equal(t, typemap.Any, fns[2].ReturnType)
	assert.Equal(t, "bool", fns[3].ReturnType)
	assert.Equal(t, typemap.Any, fns[4].ReturnType, "untyped flag")
}

func TestFunctions_CreateReturnSplit(t *testing.T) {
	tables := &typemap.Tables{
		Types:       map[string]string{"string": "str", "boolean": "bool", "int": "int"},
		ReturnTypes: map[string]string{},
		CreateReturns: map[string]map[string]string{
			"file": {"open": "int"},
		},
	}
	s := New(typemap.NewMapper(tables), Options{})
	doc := &docs.CommandDocumentation{
		Returns: []docs.ReturnValue{{Type: "string|int"}},
		Flags: []docs.Flag{
			{NameLong: "force", NameShort: "f", ArgType: "boolean", Create: true},
			{NameLong: "open", NameShort: "o", ArgType: "boolean", Create: true},
		},
	}

	fns := s.Functions("file", doc, nil)
	require.Len(t, fns, 2)

	general := fns[0]
	assert.Equal(t, []string{"force"}, keywordNames(general))
	assert.Equal(t, "str", general.ReturnType)

	open := fns[1]
	assert.Equal(t, []stub.Argument{{Name: "open", Type: "bool"}}, open.Keyword)
	assert.Equal(t, "int", open.ReturnType)
}

func TestFunctions_CreateReturnSplitEmptiesUnion(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Returns: []docs.ReturnValue{{Type: "string"}},
		Flags: []docs.Flag{
			{NameLong: "rename", NameShort: "rn", ArgType: "string", Create: true},
			{NameLong: "open", NameShort: "o", ArgType: "boolean", Create: true},
			{NameLong: "force", NameShort: "f", ArgType: "boolean", Create: true},
		},
	}

	fns := s.Functions("file", doc, nil)
	require.Len(t, fns, 3)
	assert.Equal(t, typemap.Any, fns[0].ReturnType)
	assert.Equal(t, []string{"force"}, keywordNames(fns[0]))
	// declaration order of the documentation
	assert.Equal(t, "rename", fns[1].Keyword[0].Name)
	assert.Equal(t, "open", fns[2].Keyword[0].Name)
}

func TestFunctions_QueryModifiers(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Queryable: true,
		Flags: []docs.Flag{
			{NameLong: "translation", NameShort: "t", ArgType: "[linear, linear, linear]", Create: true, Query: true},
			{NameLong: "worldSpace", NameShort: "ws", ArgType: "boolean", Create: true, Query: true},
			{NameLong: "rotateOrder", NameShort: "roo", ArgType: "string", Create: true, Query: true},
			{NameLong: "absolute", NameShort: "a", ArgType: "boolean", Create: true, Query: true},
		},
	}

	fns := s.Functions("xform", doc, nil)
	// create, bare query, translation, rotateOrder
	require.Len(t, fns, 4)

	translation := fns[2]
	assert.Equal(t, []string{"query", "translation", "worldSpace", "absolute"}, keywordNames(translation))
	assert.Equal(t, "list[float]", translation.ReturnType)

	rotateOrder := fns[3]
	assert.Equal(t, []string{"query", "rotateOrder"}, keywordNames(rotateOrder))
	assert.Equal(t, "str", rotateOrder.ReturnType)
}

func TestFunctions_MultiUseAlwaysWrapped(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Flags: []docs.Flag{
			{NameLong: "a", NameShort: "a", ArgType: "string", Create: true, MultiUse: true},
			{NameLong: "b", NameShort: "b", ArgType: "[string, int]", Create: true, MultiUse: true},
			{NameLong: "c", NameShort: "c", ArgType: "string|int", Create: true, MultiUse: true},
			{NameLong: "d", NameShort: "d", Create: true, MultiUse: true},
			{NameLong: "e", NameShort: "e", ArgType: "mystery", Create: true, MultiUse: true},
		},
	}

	create := s.Functions("cmd", doc, nil)[0]
	assert.Equal(t, "multiuse[str]", create.Keyword[0].Type)
	assert.Equal(t, "multiuse[tuple[str, int]]", create.Keyword[1].Type)
	assert.Equal(t, "multiuse[int|str]", create.Keyword[2].Type)
	assert.Equal(t, "multiuse[Any]", create.Keyword[3].Type)
	assert.Equal(t, "multiuse[mystery]", create.Keyword[4].Type)
}

func TestFunctions_SequenceParams(t *testing.T) {
	s := newSynthesizer(t, Options{SequenceParams: true})
	doc := &docs.CommandDocumentation{
		Queryable: true,
		Flags: []docs.Flag{
			{NameLong: "axis", NameShort: "ax", ArgType: "[linear, linear, linear]", Create: true, Query: true},
		},
	}

	fns := s.Functions("polyCube", doc, nil)
	assert.Equal(t, "Sequence[float]", fns[0].Keyword[0].Type)
	// returns are always fixed tuples
	assert.Equal(t, "tuple[float, float, float]", fns[2].ReturnType)
}

func TestFunctions_ReturnUnion(t *testing.T) {
	s := newSynthesizer(t, Options{})
	doc := &docs.CommandDocumentation{
		Returns: []docs.ReturnValue{{Type: "string"}, {Type: "int[]"}, {Type: "string"}},
	}

	fns := s.Functions("cmd", doc, nil)
	require.Len(t, fns, 1)
	assert.Equal(t, "list[int]|str", fns[0].ReturnType)
	assert.Empty(t, fns[0].Keyword)
}

func TestIsUpper(t *testing.T) {
	assert.True(t, isUpper("ABC"))
	assert.True(t, isUpper("A_B2"))
	assert.False(t, isUpper("Abc"))
	assert.False(t, isUpper("123"))
	assert.False(t, isUpper(""))
}
