package blocks

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"
)

/*
	Tree engine
	-----------
	Generic operations over the element forest. All walks use an explicit
	stack instead of recursion: tree depth is author-controlled and must
	not be able to exhaust the goroutine stack.
*/

// CloneWithNewIDs deep-copies the forest, minting a fresh id for every
// node. Type, props and child ordering are preserved exactly; the result
// shares no memory with the input. Single linear pass over the node count.
func CloneWithNewIDs(els []EditorElement) []EditorElement {
	out := cloneLevel(els)

	type pair struct {
		src []EditorElement
		dst []EditorElement
	}
	stack := []pair{{src: els, dst: out}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := range p.src {
			p.dst[i].Children = cloneLevel(p.src[i].Children)
			if len(p.src[i].Children) > 0 {
				stack = append(stack, pair{src: p.src[i].Children, dst: p.dst[i].Children})
			}
		}
	}
	return out
}

// cloneLevel copies one sibling slice shallowly, replacing ids and
// deep-copying props. Children are filled in by the caller's walk.
func cloneLevel(els []EditorElement) []EditorElement {
	if els == nil {
		return nil
	}
	out := make([]EditorElement, len(els))
	for i, el := range els {
		out[i] = EditorElement{
			ID:    uuid.NewString(),
			Type:  el.Type,
			Props: copyProps(el.Props),
		}
	}
	return out
}

func copyProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue handles the JSON value kinds that survive unmarshalling.
// Prop nesting is shallow in practice (flat maps, small lists), unlike
// the element tree itself.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	default:
		return v
	}
}

// CollectIDs returns every id in the forest in document order.
func CollectIDs(els []EditorElement) []string {
	var ids []string
	stack := pushReversed(nil, els)
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, el.ID)
		stack = pushReversed(stack, el.Children)
	}
	return ids
}

// DuplicateIDs returns the sorted set of ids that appear more than once
// anywhere in the forest. Empty result means the id invariant holds.
func DuplicateIDs(els []EditorElement) []string {
	counts := map[string]int{}
	for _, id := range CollectIDs(els) {
		counts[id]++
	}
	var dups []string
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

// DiffStructure compares two forests ignoring ids: type, props and child
// ordering must match position by position. Returns one human-readable
// line per difference; empty means structurally identical.
func DiffStructure(a, b []EditorElement) []string {
	var diffs []string

	type pair struct {
		a, b []EditorElement
		path string
	}
	stack := []pair{{a: a, b: b, path: "elements"}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(p.a) != len(p.b) {
			diffs = append(diffs, fmt.Sprintf("%s: child count %d != %d", p.path, len(p.a), len(p.b)))
			continue
		}
		for i := range p.a {
			path := fmt.Sprintf("%s[%d]", p.path, i)
			if p.a[i].Type != p.b[i].Type {
				diffs = append(diffs, fmt.Sprintf("%s: type %q != %q", path, p.a[i].Type, p.b[i].Type))
			}
			if !reflect.DeepEqual(p.a[i].Props, p.b[i].Props) {
				diffs = append(diffs, fmt.Sprintf("%s: props differ", path))
			}
			stack = append(stack, pair{a: p.a[i].Children, b: p.b[i].Children, path: path + ".children"})
		}
	}

	sort.Strings(diffs)
	return diffs
}

func pushReversed(stack []*EditorElement, els []EditorElement) []*EditorElement {
	for i := len(els) - 1; i >= 0; i-- {
		stack = append(stack, &els[i])
	}
	return stack
}
