package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"uxfomo/internal/profile"
)

const (
	// Version is written to meta.exportVersion.
	Version = "1"
	// DateLayout formats meta.exportDate: UTC with milliseconds.
	DateLayout = "2006-01-02T15:04:05.000Z"
	// SectionGDPR is the reserved extension section.
	SectionGDPR = "gdpr"
)

// Meta describes one export.
type Meta struct {
	ExportDate    string `json:"exportDate"`
	ExportVersion string `json:"exportVersion"`
}

// Payload is the export envelope. Sections holds extension sections keyed by
// name; "meta" and "profile" are ignored there.
type Payload struct {
	Meta     Meta
	Profile  profile.Record
	Sections map[string]any
}

// MarshalJSON writes meta, profile, gdpr, then the remaining sections sorted
// by name. gdpr is null unless a section overrides it.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "meta", p.Meta, false); err != nil {
		return nil, err
	}
	if err := writeMember(&buf, "profile", p.Profile, true); err != nil {
		return nil, err
	}
	var gdpr any
	if v, ok := p.Sections[SectionGDPR]; ok {
		gdpr = v
	}
	if err := writeMember(&buf, SectionGDPR, gdpr, true); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(p.Sections))
	for name := range p.Sections {
		switch name {
		case "meta", "profile", SectionGDPR:
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeMember(&buf, name, p.Sections[name], true); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, value any, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	key, err := encode(name, "")
	if err != nil {
		return err
	}
	val, err := encode(value, "")
	if err != nil {
		return fmt.Errorf("export section %q: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// encode marshals without HTML escaping and, when indent is set, indents.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Builder produces payloads stamped by its clock.
type Builder struct {
	now func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock sets the time source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder returns a builder using time.Now unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Now returns the builder's current time.
func (b *Builder) Now() time.Time {
	return b.now()
}

// Build wraps a copy of rec in an envelope. Inline media stays embedded.
func (b *Builder) Build(rec profile.Record, sections map[string]any) Payload {
	var copied map[string]any
	if len(sections) > 0 {
		copied = make(map[string]any, len(sections))
		for k, v := range sections {
			copied[k] = v
		}
	}
	return Payload{
		Meta: Meta{
			ExportDate:    b.now().UTC().Format(DateLayout),
			ExportVersion: Version,
		},
		Profile:  rec.Clone(),
		Sections: copied,
	}
}

// Document builds the payload and serializes it with two-space indentation.
func (b *Builder) Document(rec profile.Record, sections map[string]any) ([]byte, error) {
	return Serialize(b.Build(rec, sections))
}

// Serialize writes p as an indented JSON document.
func Serialize(p Payload) ([]byte, error) {
	data, err := encode(p, "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize export payload: %w", err)
	}
	return data, nil
}
