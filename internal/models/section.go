// Defines the Section tagged union and its two variants.

package models

// SectionKind discriminates the two section variants. Every consumer of
// sections must switch on the kind and handle both cases.
type SectionKind string

const (
	// SectionKindFields is a titled group of free-text fields.
	SectionKindFields SectionKind = "fields"
	// SectionKindImages is a titled image gallery.
	SectionKindImages SectionKind = "images"
)

// Section is a titled sub-unit of an Article: either a group of text
// fields or an image gallery, discriminated by Kind. Documents written by
// older application versions may omit the discriminant, in which case the
// migration layer defaults it to SectionKindFields.
type Section struct {
	Kind   SectionKind `json:"type,omitempty" jsonschema:"description=Section variant (fields or images)"`
	Title  string      `json:"title" jsonschema:"description=Section title"`
	Fields []Field     `json:"fields,omitempty" jsonschema:"description=Ordered text fields (fields variant only)"`
	Images []ImageRef  `json:"images,omitempty" jsonschema:"description=Ordered image references (images variant only)"`
}

// Clone returns a deep copy of the Section.
func (s *Section) Clone() Section {
	c := *s
	if s.Fields != nil {
		c.Fields = make([]Field, len(s.Fields))
		copy(c.Fields, s.Fields)
	}
	if s.Images != nil {
		c.Images = make([]ImageRef, len(s.Images))
		copy(c.Images, s.Images)
	}
	return c
}

// Field is a single free-text entry within a fields section. Content is
// markdown-lite free text.
type Field struct {
	ID      string `json:"id" jsonschema:"description=Unique field identifier"`
	Title   string `json:"title" jsonschema:"description=Field label"`
	Content string `json:"content,omitempty" jsonschema:"description=Free text content (markdown-lite)"`
}

// ImageRef references an image payload in the blob store. The section
// holds no pixel data; ID is the join key into the blob store.
//
// Data is only ever populated in documents written by legacy application
// versions that inlined payloads into the structured document. The
// migration layer moves it to the blob store and clears it; current
// documents never carry it.
type ImageRef struct {
	ID      string `json:"id" jsonschema:"description=Image id; join key into the blob store"`
	Caption string `json:"caption,omitempty" jsonschema:"description=Display caption"`
	Data    string `json:"data,omitempty" jsonschema:"description=Legacy inline payload; stripped by migration"`
}
