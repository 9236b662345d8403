package model

import "encoding/json"

// Article is a single article record returned by the archive API. The payload
// is opaque to this system and is carried through to the output file exactly as
// received; only the UID is extracted, for logging and the run journal.
type Article struct {
	UID string
	Raw json.RawMessage
}

// MarshalJSON emits the original API payload unmodified.
func (a Article) MarshalJSON() ([]byte, error) {
	if a.Raw == nil {
		return []byte("null"), nil
	}
	return a.Raw, nil
}

// UnmarshalJSON stores the raw payload and peeks at the "uid" field if present.
func (a *Article) UnmarshalJSON(data []byte) error {
	a.Raw = append(a.Raw[:0], data...)

	var peek struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return err
	}
	a.UID = peek.UID
	return nil
}

// ResultMap maps an agency name to the articles collected for it, in the order
// the API returned them. It serializes as a single JSON object.
type ResultMap map[string][]Article
