package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONFormatter writes a comparison set as a single JSON document.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes compSet. Decimal amounts are emitted as strings so no
// precision is lost.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", fmt.Errorf("no comparison to format")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
