package todo

import (
	"bytes"
	"encoding/json"
)

// Todo is one list element. A todo read from the store keeps the element
// exactly as stored: unknown fields, and known fields whose stored value
// has the wrong type, are written back unchanged.
type Todo struct {
	ID        string
	Text      string
	Completed bool

	// fields is the stored object; nil for todos created in this process.
	fields map[string]json.RawMessage
	// loose marks known keys whose stored value didn't fit the Go type.
	loose map[string]bool
	// opaque is a stored element that isn't a JSON object at all.
	opaque json.RawMessage
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	Text      *string
	Completed *bool
}

const (
	keyID        = "id"
	keyText      = "text"
	keyCompleted = "completed"
)

func (t *Todo) SetText(text string) {
	t.Text = text
	t.touch(keyText)
}

func (t *Todo) SetCompleted(completed bool) {
	t.Completed = completed
	t.touch(keyCompleted)
}

// touch makes key authoritative from the Go field on the next marshal.
func (t *Todo) touch(key string) {
	if t.fields == nil {
		return
	}
	delete(t.loose, key)
	if _, ok := t.fields[key]; !ok {
		t.fields[key] = nil
	}
}

func (t *Todo) UnmarshalJSON(b []byte) error {
	*t = Todo{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		t.opaque = append(json.RawMessage(nil), bytes.TrimSpace(b)...)
		return nil
	}

	t.fields = fields
	t.loose = make(map[string]bool)
	decodeField(fields, keyID, &t.ID, t.loose)
	decodeField(fields, keyText, &t.Text, t.loose)
	decodeField(fields, keyCompleted, &t.Completed, t.loose)
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T, loose map[string]bool) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		loose[key] = true
		return
	}
	*dst = v
}

func (t Todo) MarshalJSON() ([]byte, error) {
	if t.opaque != nil {
		return t.opaque, nil
	}
	if t.fields == nil {
		return json.Marshal(struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			Completed bool   `json:"completed"`
		}{t.ID, t.Text, t.Completed})
	}

	out := make(map[string]any, len(t.fields))
	for k, v := range t.fields {
		out[k] = v
	}
	known := map[string]any{keyID: t.ID, keyText: t.Text, keyCompleted: t.Completed}
	for k, v := range known {
		if _, ok := t.fields[k]; ok && !t.loose[k] {
			out[k] = v
		}
	}
	return json.Marshal(out)
}
