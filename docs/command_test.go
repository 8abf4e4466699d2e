package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/cmdstub/errors"
)

// loadPages reads the named fixture archive into a file name to content map
func loadPages(t *testing.T, archive string) map[string]string {
	t.Helper()
	ar, err := txtar.ParseFile(archive)
	require.NoError(t, err)

	pages := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		pages[f.Name] = string(f.Data)
	}
	return pages
}

func parsePage(t *testing.T, name string) *CommandDocumentation {
	t.Helper()
	page, ok := loadPages(t, "testdata/pages.txtar")[name]
	require.True(t, ok, "fixture %s missing", name)

	doc, err := ParseHTMLString(page)
	require.NoError(t, err)
	return doc
}

func TestParseHTML_FullPage(t *testing.T) {
	doc := parsePage(t, "polyCube.html")

	assert.True(t, doc.Undoable)
	assert.True(t, doc.Queryable)
	assert.True(t, doc.Editable)
	assert.False(t, doc.Obsolete)
	assert.Empty(t, doc.ObsoleteMessage)

	assert.Equal(t,
		"The cube command creates a new polygonal cube. It is very useful.\nUse **width** to size it.\nSee also *polySphere*",
		doc.Description)

	assert.Equal(t, []ReturnValue{{Type: "string[]", Description: "Object name and node name."}}, doc.Returns)

	require.Len(t, doc.Flags, 5)
	assert.Equal(t, Flag{
		NameLong:    "width",
		NameShort:   "w",
		ArgType:     "linear",
		Description: "Width of the cube. Default: 1.0",
		Query:       true,
		Edit:        true,
		Create:      true,
	}, doc.Flags[0])

	assert.Equal(t, "axis", doc.Flags[1].NameLong)
	assert.Equal(t, "[linear, linear, linear]", doc.Flags[1].ArgType)

	ch := doc.Flags[2]
	assert.Equal(t, "ch", ch.NameShort)
	assert.Equal(t, "boolean", ch.ArgType)
	assert.True(t, ch.Create)
	assert.True(t, ch.Query)
	assert.False(t, ch.Edit)

	name := doc.Flags[3]
	assert.True(t, name.MultiUse)
	assert.Equal(t, "Give a name to the resulting node.", name.Description)

	assert.Equal(t, "object", doc.Flags[4].NameLong)
	assert.Empty(t, doc.Flags[4].ArgType)

	assert.Equal(t, "import maya.cmds as cmds\n\ncmds.polyCube( sx=10, sy=15, sz=5, h=20 )", doc.Examples)
}

func TestParseHTML_FlagSelectors(t *testing.T) {
	doc := parsePage(t, "polyCube.html")

	names := func(flags []Flag) []string {
		var out []string
		for _, f := range flags {
			out = append(out, f.NameLong)
		}
		return out
	}

	assert.Equal(t, []string{"width", "axis", "constructionHistory", "name", "object"}, names(doc.CreateFlags()))
	assert.Equal(t, []string{"width", "axis"}, names(doc.EditFlags()))
	assert.Equal(t, []string{"width", "axis", "constructionHistory"}, names(doc.QueryFlags()))
}

func TestParseHTML_ParagraphReturn(t *testing.T) {
	doc := parsePage(t, "ls.html")

	assert.False(t, doc.Undoable)
	assert.False(t, doc.Queryable)
	assert.False(t, doc.Editable)
	assert.Equal(t, "The ls command returns the names of objects in the scene.", doc.Description)
	assert.Equal(t, []ReturnValue{{Type: "string[]"}}, doc.Returns)
	require.Len(t, doc.Flags, 1)
	assert.Equal(t, "List objects that are currently selected.", doc.Flags[0].Description)
	assert.Empty(t, doc.Examples)
}

func TestParseHTML_NoReturnHeader(t *testing.T) {
	doc := parsePage(t, "no_return.html")

	assert.Empty(t, doc.Description)
	assert.Empty(t, doc.Returns)
	assert.Empty(t, doc.Flags)
	assert.False(t, doc.Undoable)
	assert.True(t, doc.Queryable)
	assert.False(t, doc.Editable)
}

func TestParseHTML_Obsolete(t *testing.T) {
	t.Run("message from body text", func(t *testing.T) {
		doc := parsePage(t, "obsolete.html")
		assert.True(t, doc.Obsolete)
		assert.Equal(t,
			"dgInfo (Obsolete) This command is obsolete and will be removed. Use dgdirty instead.",
			doc.ObsoleteMessage)
	})

	t.Run("fallback when only banner and toolbar", func(t *testing.T) {
		doc := parsePage(t, "obsolete_bare.html")
		assert.True(t, doc.Obsolete)
		assert.Equal(t, ObsoleteFallback, doc.ObsoleteMessage)
	})
}

func TestParseHTML_Malformed(t *testing.T) {
	pages := loadPages(t, "testdata/pages.txtar")

	tests := []struct {
		page        string
		errContains string
	}{
		{"bad_flag_cells.html", "expected 3 cells"},
		{"bad_flag_names.html", "expected long and short flag name"},
		{"bad_return_shape.html", "got <div>"},
		{"bad_return_missing.html", "no following element"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			_, err := ParseHTMLString(pages[tt.page])
			require.Error(t, err)
			assert.True(t, errors.IsMalformedPageError(err))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestParseHTML_EmptyDocument(t *testing.T) {
	doc, err := ParseHTMLString("")
	require.NoError(t, err)
	assert.True(t, doc.Undoable)
	assert.Empty(t, doc.Flags)
	assert.Empty(t, doc.Returns)
	assert.False(t, doc.Obsolete)
}

func TestDescribeElementEmphasis(t *testing.T) {
	page := `<html><body><p id="synopsis">x</p><p>cap</p>` +
		`<b>bold</b> <b>**already**</b> <i>it</i> <i>*kept*</i>` +
		`<h2><a name="hReturn">Return value</a></h2><p>None</p></body></html>`

	doc, err := ParseHTMLString(page)
	require.NoError(t, err)
	assert.Equal(t, "**bold** **already** *it* *kept*", doc.Description)
}
