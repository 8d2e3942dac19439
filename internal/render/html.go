package render

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// voidTags have no closing tag. A renderer may still attach siblings as
// children of a void node (an image with a caption, say), and those are
// emitted right after the tag.
var voidTags = map[string]bool{
	"img":   true,
	"hr":    true,
	"br":    true,
	"input": true,
}

// booleanAttrs are the only attributes collapsed to the bare form when
// empty. Everything else keeps an explicit value, so alt="" survives.
var booleanAttrs = map[string]bool{
	"required": true,
	"disabled": true,
	"checked":  true,
}

// WriteHTML serializes a rendered node tree. All text and attribute
// values are escaped; attributes are emitted in sorted key order so the
// output is byte-stable for identical input.
func WriteHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}

	type frame struct {
		node    *Node
		closing bool
	}
	stack := []frame{{node: n}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.closing {
			if _, err := fmt.Fprintf(w, "</%s>", f.node.Tag); err != nil {
				return err
			}
			continue
		}

		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(f.node.Tag)
		for _, k := range sortedAttrKeys(f.node.Attrs) {
			v := f.node.Attrs[k]
			if v == "" && booleanAttrs[k] {
				b.WriteString(" " + k)
				continue
			}
			b.WriteString(fmt.Sprintf(" %s=%q", k, html.EscapeString(v)))
		}
		b.WriteByte('>')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if !voidTags[f.node.Tag] {
			stack = append(stack, frame{node: f.node, closing: true})
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i]})
		}

		if voidTags[f.node.Tag] {
			continue
		}

		if f.node.Text != "" {
			if _, err := io.WriteString(w, html.EscapeString(f.node.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}
