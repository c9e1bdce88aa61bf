// Package models defines the client-side data records.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
)

// ErrMissingUserID is returned when a user record has no usable id.
var ErrMissingUserID = errors.New("user record has no id")

// User is the session record returned by login or restored from storage.
//
// Only ID and Token are required. Fields the client does not model are kept
// in Extra so a record survives a save/load cycle unchanged.
type User struct {
	ID    string
	Token string
	Email string
	Name  string

	// Extra holds every other top-level field as raw JSON.
	Extra map[string]json.RawMessage
}

var knownUserFields = []string{"id", "token", "email", "name"}

// UnmarshalJSON accepts string or numeric ids; numbers keep their decimal form.
func (u *User) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode user record: %w", err)
	}

	id, err := decodeID(raw["id"])
	if err != nil {
		return err
	}

	var rec User
	rec.ID = id
	if err := decodeOptionalString(raw, "token", &rec.Token); err != nil {
		return err
	}
	if err := decodeOptionalString(raw, "email", &rec.Email); err != nil {
		return err
	}
	if err := decodeOptionalString(raw, "name", &rec.Name); err != nil {
		return err
	}

	for _, k := range knownUserFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		rec.Extra = raw
	}

	*u = rec
	return nil
}

// MarshalJSON writes the typed fields plus Extra. Typed fields win over
// Extra entries with the same name.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["id"] = u.ID
	out["token"] = u.Token
	if u.Email != "" {
		out["email"] = u.Email
	}
	if u.Name != "" {
		out["name"] = u.Name
	}
	return json.Marshal(out)
}

// Validate reports whether the record can become the current user.
func (u User) Validate() error {
	if u.ID == "" {
		return ErrMissingUserID
	}
	return nil
}

// Clone returns a copy that shares nothing mutable with u.
func (u User) Clone() User {
	c := u
	if u.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(u.Extra))
		for k, v := range u.Extra {
			c.Extra[k] = bytes.Clone(v)
		}
	}
	return c
}

// Equal compares records field by field, Extra included.
func (u User) Equal(o User) bool {
	if u.ID != o.ID || u.Token != o.Token || u.Email != o.Email || u.Name != o.Name {
		return false
	}
	return maps.EqualFunc(u.Extra, o.Extra, func(a, b json.RawMessage) bool {
		return bytes.Equal(a, b)
	})
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("decode user id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

func decodeOptionalString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("decode user %s: %w", key, err)
	}
	return nil
}
