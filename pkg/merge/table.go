package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte("\xef\xbb\xbf")

type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject parses a JSON object and returns its members in document order
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		members = append(members, member{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the top-level object")
	}
	return members, nil
}

// table is a JSON object that keeps first-insertion key order.
// Overwriting a key keeps its position.
type table struct {
	keys   []string
	values map[string]json.RawMessage
}

func newTable() *table {
	return &table{values: make(map[string]json.RawMessage)}
}

// set stores value under key and reports whether key was already present
func (t *table) set(key string, value json.RawMessage) bool {
	_, existed := t.values[key]
	if !existed {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
	return existed
}

func (t *table) get(key string) (json.RawMessage, bool) {
	v, ok := t.values[key]
	return v, ok
}

func (t *table) len() int { return len(t.keys) }

// MarshalJSON implements json.Marshaler
func (t *table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := encodeString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(t.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalPretty renders v with two-space indentation and no HTML escaping
func marshalPretty(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// describeJSONError shortens decoder errors for warning details
func describeJSONError(err error) string {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return "unexpected end of JSON input"
	}
	return strings.TrimPrefix(err.Error(), "json: ")
}
