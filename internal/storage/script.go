package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The opportunity and flip exports are consumed by static dashboard pages
// as plain <script> includes, so they are written as JS assignment
// statements with the JSON document embedded: `const <name> = {...};`.
// EncodeScript and DecodeScript are the only places that know about the
// wrapper; everything else deals in plain values.

// EncodeScript marshals v with 4-space indentation and wraps it in a JS
// const assignment.
func EncodeScript(name string, v any) ([]byte, error) {
	body, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return []byte("const " + name + " = " + string(body) + ";"), nil
}

// DecodeScript strips the assignment wrapper written by EncodeScript and
// unmarshals the embedded JSON into v.
func DecodeScript(data []byte, name string, v any) error {
	content := strings.TrimSpace(string(data))
	prefix := "const " + name + " = "
	if !strings.HasPrefix(content, prefix) {
		return fmt.Errorf("missing \"const %s\" prefix", name)
	}
	content = strings.TrimSpace(strings.TrimPrefix(content, prefix))
	content = strings.TrimSuffix(content, ";")
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}
