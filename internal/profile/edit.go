package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"uxfomo/internal/textutil"
)

var (
	ErrFeaturedLimit = fmt.Errorf("featured content is limited to %d items", MaxFeaturedItems)
	ErrBioTooLong    = fmt.Errorf("bio is limited to %d characters", MaxBioLength)
	ErrUnknownField  = errors.New("unknown profile field")
	ErrUnknownLink   = errors.New("unknown link")
	ErrItemNotFound  = errors.New("featured item not found")
	ErrInvalidKey    = errors.New("invalid key")
)

// Fields editable through SetField.
const (
	FieldName         = keyName
	FieldNick         = keyNick
	FieldBio          = keyBio
	FieldPresentation = keyPresentation
	FieldAvatar       = keyAvatar
)

// Mutation transforms a record. Mutations receive a private copy, so they may
// modify maps and slices in place.
type Mutation func(Record) (Record, error)

// Apply runs mutations in order against a copy of rec. On the first error the
// original record is returned unchanged along with the error.
func Apply(rec Record, mutations ...Mutation) (Record, error) {
	next := rec.Clone()
	for _, m := range mutations {
		var err error
		next, err = m(next)
		if err != nil {
			return rec, err
		}
	}
	return next, nil
}

// SetField sets one of the scalar identity fields.
func SetField(field, value string) Mutation {
	return func(r Record) (Record, error) {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case FieldName:
			r.Name = value
		case FieldNick:
			r.Nick = value
		case FieldBio:
			if textutil.RuneLength(value) > MaxBioLength {
				return r, fmt.Errorf("%w (got %d)", ErrBioTooLong, textutil.RuneLength(value))
			}
			r.Bio = value
		case FieldPresentation:
			r.Presentation = value
		case FieldAvatar:
			r.Avatar = value
		default:
			return r, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return r, nil
	}
}

// LinkKey normalizes user input into a link or stat key.
func LinkKey(raw string) (string, error) {
	key := textutil.SanitizeToken(raw)
	if key == "unknown" && !strings.EqualFold(strings.TrimSpace(raw), "unknown") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}
	return key, nil
}

// SetLink sets the URL for key, adding the key to linksOrder and giving it a
// display name when it is new.
func SetLink(key, url string) Mutation {
	return func(r Record) (Record, error) {
		k, err := LinkKey(key)
		if err != nil {
			return r, err
		}
		if r.Links == nil {
			r.Links = make(map[string]string)
		}
		r.Links[k] = strings.TrimSpace(url)
		if !slices.Contains(r.LinksOrder, k) {
			r.LinksOrder = append(r.LinksOrder, k)
		}
		if _, ok := r.LinkNames[k]; !ok {
			if r.LinkNames == nil {
				r.LinkNames = make(map[string]string)
			}
			r.LinkNames[k] = textutil.TitleLabel(k)
		}
		return r, nil
	}
}

// ClearLink empties the URL for key and keeps the key itself.
func ClearLink(key string) Mutation {
	return func(r Record) (Record, error) {
		k, err := knownLink(r, key)
		if err != nil {
			return r, err
		}
		if r.Links == nil {
			r.Links = make(map[string]string)
		}
		r.Links[k] = ""
		return r, nil
	}
}

// RemoveLink drops key from links, linkNames, and linksOrder.
func RemoveLink(key string) Mutation {
	return func(r Record) (Record, error) {
		k, err := knownLink(r, key)
		if err != nil {
			return r, err
		}
		delete(r.Links, k)
		delete(r.LinkNames, k)
		r.LinksOrder = slices.DeleteFunc(r.LinksOrder, func(s string) bool { return s == k })
		return r, nil
	}
}

// RenameLink sets the display name for key. An empty label removes the name
// so displays fall back to the title-cased key.
func RenameLink(key, label string) Mutation {
	return func(r Record) (Record, error) {
		k, err := knownLink(r, key)
		if err != nil {
			return r, err
		}
		label = strings.TrimSpace(label)
		if label == "" {
			delete(r.LinkNames, k)
			return r, nil
		}
		if r.LinkNames == nil {
			r.LinkNames = make(map[string]string)
		}
		r.LinkNames[k] = label
		return r, nil
	}
}

// ReorderLinks moves the given keys to the front of linksOrder in the given
// order. Keys not mentioned keep their relative order after them.
func ReorderLinks(keys ...string) Mutation {
	return func(r Record) (Record, error) {
		front := make([]string, 0, len(keys))
		for _, key := range keys {
			k, err := knownLink(r, key)
			if err != nil {
				return r, err
			}
			if !slices.Contains(front, k) {
				front = append(front, k)
			}
		}
		rest := slices.DeleteFunc(slices.Clone(r.LinksOrder), func(s string) bool {
			return slices.Contains(front, s)
		})
		r.LinksOrder = append(front, rest...)
		return r, nil
	}
}

// SetStat sets a display counter. Values are free text such as "1.2k".
func SetStat(key, value string) Mutation {
	return func(r Record) (Record, error) {
		k, err := LinkKey(key)
		if err != nil {
			return r, err
		}
		if r.Stats == nil {
			r.Stats = make(map[string]string)
		}
		r.Stats[k] = strings.TrimSpace(value)
		return r, nil
	}
}

// AddFeatured appends a new item with a fresh identifier.
func AddFeatured(url, caption string) Mutation {
	return func(r Record) (Record, error) {
		if len(r.FeaturedContent) >= MaxFeaturedItems {
			return r, ErrFeaturedLimit
		}
		r.FeaturedContent = append(r.FeaturedContent, FeaturedItem{
			ID:      NewItemID(),
			URL:     url,
			Caption: caption,
		})
		return r, nil
	}
}

// UpdateFeaturedURL replaces the media of the item at index.
func UpdateFeaturedURL(index int, url string) Mutation {
	return func(r Record) (Record, error) {
		if err := checkIndex(r, index); err != nil {
			return r, err
		}
		r.FeaturedContent[index].URL = url
		return r, nil
	}
}

// UpdateFeaturedCaption replaces the caption of the item at index.
func UpdateFeaturedCaption(index int, caption string) Mutation {
	return func(r Record) (Record, error) {
		if err := checkIndex(r, index); err != nil {
			return r, err
		}
		r.FeaturedContent[index].Caption = caption
		return r, nil
	}
}

// RemoveFeatured deletes the item at index.
func RemoveFeatured(index int) Mutation {
	return func(r Record) (Record, error) {
		if err := checkIndex(r, index); err != nil {
			return r, err
		}
		r.FeaturedContent = slices.Delete(r.FeaturedContent, index, index+1)
		return r, nil
	}
}

// MoveFeatured moves the item at from so that it ends up at index to.
func MoveFeatured(from, to int) Mutation {
	return func(r Record) (Record, error) {
		if err := checkIndex(r, from); err != nil {
			return r, err
		}
		if err := checkIndex(r, to); err != nil {
			return r, err
		}
		item := r.FeaturedContent[from]
		r.FeaturedContent = slices.Delete(r.FeaturedContent, from, from+1)
		r.FeaturedContent = slices.Insert(r.FeaturedContent, to, item)
		return r, nil
	}
}

// FeaturedIndex returns the position of the item with the given identifier.
func (r Record) FeaturedIndex(id string) (int, error) {
	for i, item := range r.FeaturedContent {
		if !item.ID.IsZero() && item.ID.String() == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %q", ErrItemNotFound, id)
}

func knownLink(r Record, key string) (string, error) {
	k, err := LinkKey(key)
	if err != nil {
		return "", err
	}
	_, inLinks := r.Links[k]
	_, inNames := r.LinkNames[k]
	if !inLinks && !inNames && !slices.Contains(r.LinksOrder, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLink, k)
	}
	return k, nil
}

func checkIndex(r Record, index int) error {
	if index < 0 || index >= len(r.FeaturedContent) {
		return fmt.Errorf("%w: position %d of %d", ErrItemNotFound, index+1, len(r.FeaturedContent))
	}
	return nil
}
