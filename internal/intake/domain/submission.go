package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Section is one questionnaire group kept as raw JSON leaves, so that any
// client-supplied shape can be normalized without a decode failure.
type Section map[string]json.RawMessage

// Submission is the two-group payload a client sends to request persistence.
type Submission struct {
	Basic Section
	Prefs Section
}

// ParseSubmission checks the payload shape: a JSON object whose basic and
// prefs members are both non-null objects. An empty body is a shape failure.
func ParseSubmission(body []byte) (Submission, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Submission{}, ErrMissingSections
	}
	if !json.Valid(body) {
		return Submission{}, ErrInvalidJSON
	}
	if !isObject(body) {
		return Submission{}, ErrMissingSections
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Submission{}, ErrInvalidJSON
	}

	basic, ok := parseSection(top["basic"])
	if !ok {
		return Submission{}, ErrMissingSections
	}
	prefs, ok := parseSection(top["prefs"])
	if !ok {
		return Submission{}, ErrMissingSections
	}
	return Submission{Basic: basic, Prefs: prefs}, nil
}

func parseSection(raw json.RawMessage) (Section, bool) {
	if !isObject(raw) {
		return nil, false
	}
	var section Section
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, false
	}
	if section == nil {
		section = Section{}
	}
	return section, true
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// Text returns a trimmed free-text leaf. Scalars render as their JSON
// literal; absent, null and nested values become "".
func (s Section) Text(key string) string {
	value, ok := s.decode(key)
	if !ok {
		return ""
	}
	text, ok := scalarString(value)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// Flag returns a yes/no leaf untouched when present. Strings are not
// trimmed, other scalars render as their JSON literal, nested values as
// compact JSON. Absent or null leaves become "".
func (s Section) Flag(key string) string {
	value, ok := s.decode(key)
	if !ok || value == nil {
		return ""
	}
	if text, ok := scalarString(value); ok {
		return text
	}
	return compact(s[key])
}

// Multi joins a list leaf with MultiValueSeparator, keeping input order.
// Anything other than a JSON array becomes "".
func (s Section) Multi(key string) string {
	value, ok := s.decode(key)
	if !ok {
		return ""
	}
	items, ok := value.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = elementString(item)
	}
	return JoinMultiValue(parts)
}

func (s Section) decode(key string) (any, bool) {
	raw, ok := s[key]
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func elementString(value any) string {
	if value == nil {
		return ""
	}
	if text, ok := scalarString(value); ok {
		return text
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}
