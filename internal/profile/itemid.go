package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ItemID identifies a featured item. Stored records carry either numeric or
// string identifiers; both round-trip unchanged, including the empty string.
// The zero value is an absent identifier and serializes as null.
type ItemID struct {
	text    string
	numeric bool
	set     bool
}

// NumericID returns a numeric identifier.
func NumericID(n int64) ItemID {
	return ItemID{text: strconv.FormatInt(n, 10), numeric: true, set: true}
}

// TextID returns a string identifier.
func TextID(s string) ItemID {
	return ItemID{text: s, set: true}
}

// NewItemID returns a fresh random identifier.
func NewItemID() ItemID {
	return TextID(uuid.NewString())
}

// IsZero reports whether the identifier is absent.
func (id ItemID) IsZero() bool {
	return !id.set
}

// IsNumeric reports whether the identifier serializes as a JSON number.
func (id ItemID) IsNumeric() bool {
	return id.numeric
}

func (id ItemID) String() string {
	return id.text
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	switch {
	case !id.set:
		return []byte("null"), nil
	case id.numeric:
		return []byte(id.text), nil
	default:
		return marshalRaw(id.text)
	}
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ItemID{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TextID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("featured item id: %w", err)
		}
		*id = ItemID{text: n.String(), numeric: true, set: true}
		return nil
	}
}
