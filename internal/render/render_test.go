package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/domain/blocks"
)

func pageContent() blocks.BlockContent {
	return blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Page"},
		Elements: []blocks.EditorElement{
			{
				ID:   "sec",
				Type: blocks.TypeSection,
				Children: []blocks.EditorElement{
					{ID: "h", Type: blocks.TypeHeading, Props: map[string]any{"text": "Jane & Co", "level": "1"}},
					{ID: "p", Type: blocks.TypeParagraph, Props: map[string]any{"text": "Hello <world>"}},
					{ID: "b", Type: blocks.TypeButton, Props: map[string]any{"label": "Book", "href": "https://x.example"}},
				},
			},
		},
	}
}

func TestRenderPreservesDocumentOrder(t *testing.T) {
	root := Render(pageContent())

	require.Len(t, root.Children, 1)
	sec := root.Children[0]
	assert.Equal(t, "section", sec.Tag)
	require.Len(t, sec.Children, 3)
	assert.Equal(t, "h1", sec.Children[0].Tag)
	assert.Equal(t, "p", sec.Children[1].Tag)
	assert.Equal(t, "a", sec.Children[2].Tag)
}

func TestRenderIsDeterministic(t *testing.T) {
	c := pageContent()
	a := Render(c)
	b := Render(c)
	assert.Empty(t, cmp.Diff(a, b), "identical input must yield identical trees")
}

func TestRenderUnknownTypePassthrough(t *testing.T) {
	c := blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Future"},
		Elements: []blocks.EditorElement{
			{
				ID:    "f1",
				Type:  "FutureBlockXYZ",
				Props: map[string]any{"whatever": []any{1, 2, 3}},
				Children: []blocks.EditorElement{
					{ID: "h", Type: blocks.TypeHeading, Props: map[string]any{"text": "survives"}},
				},
			},
		},
	}

	root := Render(c)
	require.Len(t, root.Children, 1)
	fut := root.Children[0]
	assert.Equal(t, "div", fut.Tag)
	assert.Equal(t, "FutureBlockXYZ", fut.Attrs["data-block-type"])
	require.Len(t, fut.Children, 1, "children of an unknown block must still render")
	assert.Equal(t, "survives", fut.Children[0].Text)
}

func TestRenderMalformedPropsDegrade(t *testing.T) {
	// Known type, props of the wrong shape. Must degrade, not drop or panic.
	c := blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Bad"},
		Elements: []blocks.EditorElement{
			{ID: "s1", Type: blocks.TypeSocialLinks, Props: map[string]any{"links": "not-a-list"}},
		},
	}
	root := Render(c)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "nav", root.Children[0].Tag)
	assert.Empty(t, root.Children[0].Children)
}

func TestWriteHTMLEscapesAndOrders(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteHTML(&sb, Render(pageContent())))
	out := sb.String()

	assert.Contains(t, out, "<h1>Jane &amp; Co</h1>")
	assert.Contains(t, out, "Hello &lt;world&gt;")
	assert.Contains(t, out, `href="https://x.example"`)
	assert.True(t, strings.HasPrefix(out, `<main class="profile-page">`))
	assert.True(t, strings.HasSuffix(out, "</main>"))

	var sb2 strings.Builder
	require.NoError(t, WriteHTML(&sb2, Render(pageContent())))
	assert.Equal(t, out, sb2.String(), "serialization must be byte-stable")
}

func TestWriteHTMLVoidTags(t *testing.T) {
	c := blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Hr"},
		Elements: []blocks.EditorElement{{ID: "d", Type: blocks.TypeDivider}},
	}
	var sb strings.Builder
	require.NoError(t, WriteHTML(&sb, Render(c)))
	assert.Contains(t, sb.String(), "<hr>")
	assert.NotContains(t, sb.String(), "</hr>")
}

func TestWriteHTMLVoidTagKeepsChildren(t *testing.T) {
	n := &Node{
		Tag:   "figure",
		Attrs: map[string]string{},
		Children: []*Node{
			{
				Tag:      "img",
				Attrs:    map[string]string{"src": "a.png", "alt": "A portrait"},
				Children: []*Node{{Tag: "figcaption", Text: "Jane"}},
			},
		},
	}
	var sb strings.Builder
	require.NoError(t, WriteHTML(&sb, n))
	assert.Equal(t,
		`<figure><img alt="A portrait" src="a.png"><figcaption>Jane</figcaption></figure>`,
		sb.String())
}

func TestWriteHTMLEmptyAttributeValues(t *testing.T) {
	// Decorative images carry alt="" deliberately; only boolean
	// attributes collapse to the bare form.
	c := blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Img"},
		Elements: []blocks.EditorElement{
			{ID: "i", Type: blocks.TypeImage, Props: map[string]any{"src": "a.png", "alt": ""}},
			{ID: "f", Type: blocks.TypeContactForm, Props: map[string]any{"title": "Say hi"}},
		},
	}
	var sb strings.Builder
	require.NoError(t, WriteHTML(&sb, Render(c)))
	out := sb.String()

	assert.Contains(t, out, `<img alt="" src="a.png">`)
	assert.Contains(t, out, " required>")
	assert.NotContains(t, out, `required=""`)
}
