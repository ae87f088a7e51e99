package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON parses a JSON string into v
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes parses a JSON byte slice into v
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

// decodeJSON decodes exactly one value; numbers stay json.Number
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// no trailing data allowed
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

// ToJSON marshals v into a string
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	codeFencePattern     = regexp.MustCompile("```(?:json|JSON)?")
	trailingCommaPattern = regexp.MustCompile(`,\s*([\]}])`)
	smartQuoteReplacer   = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
		"‘", "'", "’", "'",
	)
)

// StripCodeFences removes markdown code fences the model may wrap JSON in
func StripCodeFences(raw string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(raw, ""))
}

// CleanAIJSON strips code fences, drops trailing commas before a closing
// bracket or brace and turns smart quotes into plain ones.
func CleanAIJSON(raw string) string {
	cleaned := StripCodeFences(raw)
	cleaned = trailingCommaPattern.ReplaceAllString(cleaned, "$1")
	cleaned = smartQuoteReplacer.Replace(cleaned)
	return strings.TrimSpace(cleaned)
}

// ExtractJSON cuts content down to the outermost open..close pair, e.g. '{' and '}'.
// Content without such a pair is returned unchanged.
func ExtractJSON(content string, open, close byte) string {
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, close)
	if start != -1 && end != -1 && end > start {
		return content[start : end+1]
	}
	return content
}
