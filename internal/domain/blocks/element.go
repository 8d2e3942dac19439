package blocks

/*
	Block content model
	-------------------
	- EditorElement is one node of the authored content tree.
	- The set of known types is open for extension: an unrecognized type
	  still parses, keeps its props verbatim and renders as a passthrough.
	- Props for KNOWN types are checked against requiredProps below.
*/

const (
	TypeSection     = "Section"
	TypeHeading     = "Heading"
	TypeParagraph   = "Paragraph"
	TypeImage       = "Image"
	TypeAvatar      = "Avatar"
	TypeButton      = "Button"
	TypeDivider     = "Divider"
	TypeSocialLinks = "SocialLinks"
	TypeContactForm = "ContactForm"
)

// requiredProps lists, per known type, the prop keys that must be present
// as non-empty strings. Types absent from this map are unknown and pass
// through untouched.
var requiredProps = map[string][]string{
	TypeSection:     {},
	TypeHeading:     {"text"},
	TypeParagraph:   {"text"},
	TypeImage:       {"src"},
	TypeAvatar:      {"src"},
	TypeButton:      {"label", "href"},
	TypeDivider:     {},
	TypeSocialLinks: {},
	TypeContactForm: {},
}

// KnownType reports whether t is a block type this release ships a
// renderer and prop schema for.
func KnownType(t string) bool {
	_, ok := requiredProps[t]
	return ok
}

type EditorElement struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Props    map[string]any  `json:"props,omitempty"`
	Children []EditorElement `json:"children,omitempty"`
}

type BlockMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BlockContent is the persisted unit: a forest of elements plus
// descriptive metadata. Invariant: no duplicate element id anywhere in
// the forest.
type BlockContent struct {
	Elements []EditorElement `json:"elements"`
	Metadata BlockMetadata   `json:"metadata"`
}
