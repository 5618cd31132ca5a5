package core

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotAnObject = errors.New("document is not a JSON object")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeField decodes one known value. null and values of the wrong type
// yield nil.
func decodeField[V any](raw json.RawMessage) *V {
	if isNull(raw) {
		return nil
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// bindField returns a splitDocument setter storing into dst.
func bindField[V any](dst **V) func(json.RawMessage) bool {
	return func(raw json.RawMessage) bool {
		*dst = decodeField[V](raw)
		return *dst != nil
	}
}

// splitDocument decodes a JSON object and hands every key in known to its
// setter. Unknown keys, and known keys whose setter rejects a non-null
// value, are returned raw so they are written back unchanged.
func splitDocument(data []byte, known map[string]func(json.RawMessage) bool) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNotAnObject
	}

	var extra map[string]json.RawMessage
	for key, raw := range doc {
		if set, ok := known[key]; ok {
			if set(raw) || isNull(raw) {
				continue
			}
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[key] = raw
	}

	return extra, nil
}

func mergeExtra(base, over map[string]json.RawMessage) map[string]json.RawMessage {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}

	result := make(map[string]json.RawMessage, len(base)+len(over))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range over {
		result[k] = v
	}
	return result
}

// withExtra marshals known and lays the extra keys over its fields. An
// extra key with the same name as a field wins. Keys come out sorted.
func withExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	head, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return head, nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(head, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		fields[k] = v
	}

	return json.Marshal(fields)
}
