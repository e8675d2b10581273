package assistant

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when model output contains no parseable JSON value
var ErrNoJSON = errors.New("no JSON value found in model output")

var fencedBlock = regexp.MustCompile("(?s)```[ \t]*([A-Za-z0-9_-]*)[ \t]*\r?\n?(.*?)```")

// ExtractJSON returns the first JSON value in model output. Fenced code blocks win;
// otherwise the first balanced object or array that parses is used.
func ExtractJSON(text string) (json.RawMessage, error) {
	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		body := strings.TrimSpace(m[2])
		if body != "" && json.Valid([]byte(body)) {
			return json.RawMessage(body), nil
		}
		if v, ok := scanBalanced(body); ok {
			return v, nil
		}
	}
	if v, ok := scanBalanced(text); ok {
		return v, nil
	}
	return nil, ErrNoJSON
}

// DecodeJSON extracts the first JSON value and unmarshals it into dest
func DecodeJSON(text string, dest any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// scanBalanced tries every { or [ in order and returns the first balanced span that parses
func scanBalanced(text string) (json.RawMessage, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' && text[start] != '[' {
			continue
		}
		end, ok := matchClose(text, start)
		if !ok {
			continue
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}
	return nil, false
}

// matchClose finds the bracket closing the one at start, skipping string contents
func matchClose(text string, start int) (int, bool) {
	stack := make([]byte, 0, 8)
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
