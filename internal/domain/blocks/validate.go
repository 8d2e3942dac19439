package blocks

import (
	"encoding/json"
	"fmt"
	"strings"

	"crm-backend/internal/errs"
)

// ParseContent decodes raw JSON into a BlockContent and validates it.
// Returns errs.ValidationErrors listing EVERY offending path, never just
// the first one.
func ParseContent(raw []byte) (BlockContent, error) {
	var c BlockContent
	if err := json.Unmarshal(raw, &c); err != nil {
		return BlockContent{}, errs.ValidationErrors{{Path: "content", Message: "malformed JSON: " + err.Error()}}
	}
	if verrs := Validate(c); len(verrs) > 0 {
		return BlockContent{}, verrs
	}
	return c, nil
}

// Validate walks the whole forest and accumulates every violation.
// Unknown element types are accepted (props kept opaque) but their
// structural shape is still enforced. An empty result means valid.
func Validate(c BlockContent) errs.ValidationErrors {
	var out errs.ValidationErrors

	if strings.TrimSpace(c.Metadata.Name) == "" {
		out = append(out, errs.FieldError{Path: "metadata.name", Message: "is required"})
	}

	type frame struct {
		el   *EditorElement
		path string
	}

	// Explicit work stack: authored trees are untrusted depth.
	stack := make([]frame, 0, len(c.Elements))
	for i := len(c.Elements) - 1; i >= 0; i-- {
		stack = append(stack, frame{el: &c.Elements[i], path: fmt.Sprintf("elements[%d]", i)})
	}

	seen := map[string]string{} // id -> first path

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		el := f.el
		if strings.TrimSpace(el.ID) == "" {
			out = append(out, errs.FieldError{Path: f.path + ".id", Message: "is required"})
		} else if first, dup := seen[el.ID]; dup {
			out = append(out, errs.FieldError{
				Path:    f.path + ".id",
				Message: fmt.Sprintf("duplicate id %q (first used at %s)", el.ID, first),
			})
		} else {
			seen[el.ID] = f.path
		}

		if strings.TrimSpace(el.Type) == "" {
			out = append(out, errs.FieldError{Path: f.path + ".type", Message: "is required"})
		} else if KnownType(el.Type) {
			out = append(out, validateProps(el, f.path)...)
		}

		for i := len(el.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				el:   &el.Children[i],
				path: fmt.Sprintf("%s.children[%d]", f.path, i),
			})
		}
	}

	return out
}

func validateProps(el *EditorElement, path string) errs.ValidationErrors {
	var out errs.ValidationErrors
	for _, key := range requiredProps[el.Type] {
		v, ok := el.Props[key]
		if !ok {
			out = append(out, errs.FieldError{
				Path:    fmt.Sprintf("%s.props.%s", path, key),
				Message: fmt.Sprintf("is required for type %s", el.Type),
			})
			continue
		}
		s, isStr := v.(string)
		if !isStr || strings.TrimSpace(s) == "" {
			out = append(out, errs.FieldError{
				Path:    fmt.Sprintf("%s.props.%s", path, key),
				Message: "must be a non-empty string",
			})
		}
	}
	return out
}
