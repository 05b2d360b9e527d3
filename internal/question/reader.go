package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrDataRootNotFound = errors.New("data folder not found")
	ErrRead             = errors.New("read question file")
	ErrParse            = errors.New("parse question file")
	ErrOutsideRoot      = errors.New("path escapes data folder")
)

// Shape tells which of the accepted question file layouts a document used.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeList
	ShapeWrapped
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeWrapped:
		return "wrapped"
	case ShapeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Document is a parsed question file. Questions are kept as raw JSON so fields
// the server does not know about reach the client unchanged.
type Document struct {
	Shape     Shape
	Questions []json.RawMessage
}

func (d Document) Count() int {
	return len(d.Questions)
}

// ReadFile reads and normalizes one question file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Parse(data)
}

// Parse normalizes a question file body. A top-level array is a list of
// questions, an object with a "questions" array wraps them, and an object with a
// "question" field is a single question. Any other valid JSON yields no questions.
func Parse(data []byte) (Document, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Document{Shape: ShapeUnknown}, nil
	}

	switch raw[0] {
	case '[':
		list, err := decodeList(raw)
		if err != nil {
			return Document{}, err
		}
		return Document{Shape: ShapeList, Questions: list}, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Document{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if qs, ok := obj["questions"]; ok && isArray(qs) {
			list, err := decodeList(qs)
			if err != nil {
				return Document{}, err
			}
			return Document{Shape: ShapeWrapped, Questions: list}, nil
		}
		if _, ok := obj["question"]; ok {
			return Document{Shape: ShapeSingle, Questions: []json.RawMessage{raw}}, nil
		}
	}
	return Document{Shape: ShapeUnknown}, nil
}

func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	list := []json.RawMessage{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return list, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// ResolvePath maps a file identifier (a bare filename or a slash separated
// path relative to root) to a filesystem path inside root.
func ResolvePath(root, id string) (string, error) {
	if filepath.IsAbs(id) || strings.HasPrefix(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, id)
	}
	path := filepath.Join(root, filepath.FromSlash(id))
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, id)
	}
	return path, nil
}
