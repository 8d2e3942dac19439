package render

import (
	"sort"

	"crm-backend/internal/domain/blocks"
)

// Node is one element of the renderable tree. Deterministic: the same
// BlockContent always produces the same tree, so snapshots are stable.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// renderFunc maps one element's props onto a Node. Children are attached
// by the tree walk, not by the renderFunc. A nil return or a panic
// degrades to the passthrough container.
type renderFunc func(el *blocks.EditorElement) *Node

var registry = map[string]renderFunc{
	blocks.TypeSection:     renderSection,
	blocks.TypeHeading:     renderHeading,
	blocks.TypeParagraph:   renderParagraph,
	blocks.TypeImage:       renderImage,
	blocks.TypeAvatar:      renderAvatar,
	blocks.TypeButton:      renderButton,
	blocks.TypeDivider:     renderDivider,
	blocks.TypeSocialLinks: renderSocialLinks,
	blocks.TypeContactForm: renderContactForm,
}

// Render turns a BlockContent into a renderable tree. Document order is
// render order. Unknown block types (and known types whose renderer
// misbehaves on malformed props) become a neutral passthrough container
// that still renders its children: content is never dropped and a single
// bad node never takes down the page.
func Render(c blocks.BlockContent) *Node {
	root := &Node{Tag: "main", Attrs: map[string]string{"class": "profile-page"}}

	type frame struct {
		el     *blocks.EditorElement
		parent *Node
	}

	// Explicit stack, same as the tree engine: depth is author-controlled.
	stack := make([]frame, 0, len(c.Elements))
	for i := len(c.Elements) - 1; i >= 0; i-- {
		stack = append(stack, frame{el: &c.Elements[i], parent: root})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := renderOne(f.el)
		f.parent.Children = append(f.parent.Children, n)

		for i := len(f.el.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{el: &f.el.Children[i], parent: n})
		}
	}
	return root
}

func renderOne(el *blocks.EditorElement) (n *Node) {
	defer func() {
		if r := recover(); r != nil {
			n = passthrough(el)
		}
	}()

	fn, ok := registry[el.Type]
	if !ok {
		return passthrough(el)
	}
	if n = fn(el); n == nil {
		n = passthrough(el)
	}
	return n
}

// passthrough is the required fallback: a neutral container tagged with
// the original type so the editor can still address the node.
func passthrough(el *blocks.EditorElement) *Node {
	return &Node{Tag: "div", Attrs: map[string]string{"data-block-type": el.Type, "data-block-id": el.ID}}
}

func stringProp(el *blocks.EditorElement, key string) string {
	if s, ok := el.Props[key].(string); ok {
		return s
	}
	return ""
}

func renderSection(el *blocks.EditorElement) *Node {
	attrs := map[string]string{"class": "block-section", "data-block-id": el.ID}
	if bg := stringProp(el, "background"); bg != "" {
		attrs["style"] = "background:" + bg
	}
	return &Node{Tag: "section", Attrs: attrs}
}

func renderHeading(el *blocks.EditorElement) *Node {
	tag := "h2"
	switch stringProp(el, "level") {
	case "1":
		tag = "h1"
	case "3":
		tag = "h3"
	}
	return &Node{Tag: tag, Text: stringProp(el, "text")}
}

func renderParagraph(el *blocks.EditorElement) *Node {
	return &Node{Tag: "p", Text: stringProp(el, "text")}
}

func renderImage(el *blocks.EditorElement) *Node {
	return &Node{Tag: "img", Attrs: map[string]string{
		"src": stringProp(el, "src"),
		"alt": stringProp(el, "alt"),
	}}
}

func renderAvatar(el *blocks.EditorElement) *Node {
	return &Node{Tag: "img", Attrs: map[string]string{
		"class": "avatar",
		"src":   stringProp(el, "src"),
		"alt":   stringProp(el, "alt"),
	}}
}

func renderButton(el *blocks.EditorElement) *Node {
	return &Node{
		Tag:  "a",
		Text: stringProp(el, "label"),
		Attrs: map[string]string{
			"class": "block-button",
			"href":  stringProp(el, "href"),
		},
	}
}

func renderDivider(el *blocks.EditorElement) *Node {
	return &Node{Tag: "hr"}
}

func renderSocialLinks(el *blocks.EditorElement) *Node {
	n := &Node{Tag: "nav", Attrs: map[string]string{"class": "social-links"}}
	links, _ := el.Props["links"].([]any)
	for _, raw := range links {
		link, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := link["kind"].(string)
		url, _ := link["url"].(string)
		n.Children = append(n.Children, &Node{
			Tag:  "a",
			Text: kind,
			Attrs: map[string]string{
				"class": "social-link social-" + kind,
				"href":  url,
				"rel":   "noopener",
			},
		})
	}
	return n
}

// renderContactForm emits the lead-capture form posting back to the
// public boundary. The action is relative so the node stays independent
// of the resolved slug.
func renderContactForm(el *blocks.EditorElement) *Node {
	title := stringProp(el, "title")
	if title == "" {
		title = "Get in touch"
	}
	return &Node{
		Tag:   "form",
		Attrs: map[string]string{"class": "lead-form", "method": "post", "action": "leads"},
		Children: []*Node{
			{Tag: "h3", Text: title},
			{Tag: "input", Attrs: map[string]string{"name": "name", "placeholder": "Your name", "required": ""}},
			{Tag: "input", Attrs: map[string]string{"name": "phone", "placeholder": "Phone", "required": ""}},
			{Tag: "input", Attrs: map[string]string{"name": "interest", "placeholder": "What are you interested in?"}},
			{Tag: "button", Text: "Send", Attrs: map[string]string{"type": "submit"}},
		},
	}
}

// sortedAttrKeys keeps HTML output stable for snapshot tests.
func sortedAttrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
