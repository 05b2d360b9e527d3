// Package shuffle reorders the options of every question in a question file
// and rewrites the answer indices so they still point at the correct options.
package shuffle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"
)

var (
	ErrStructure     = errors.New("invalid question structure")
	ErrInputNotFound = errors.New("input file not found")
)

// StructureError reports a question that cannot be shuffled. Index is -1 when
// the problem is the document itself rather than one question.
type StructureError struct {
	Index  int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrStructure, e.Reason)
	}
	return fmt.Sprintf("%s: question %d: %s", ErrStructure, e.Index, e.Reason)
}

func (e *StructureError) Unwrap() error {
	return ErrStructure
}

// Permute returns options reordered by a random permutation together with the
// new, sorted positions of the answer indices.
func Permute[T any](options []T, answer []int, rng *rand.Rand) ([]T, []int, error) {
	for _, old := range answer {
		if old < 0 || old >= len(options) {
			return nil, nil, fmt.Errorf("answer index %d out of range for %d options", old, len(options))
		}
	}

	perm := rng.Perm(len(options))
	shuffled := make([]T, len(options))
	moved := make([]int, len(options))
	for p, old := range perm {
		shuffled[p] = options[old]
		moved[old] = p
	}

	answers := make([]int, 0, len(answer))
	for _, old := range answer {
		answers = append(answers, moved[old])
	}
	sort.Ints(answers)
	return shuffled, answers, nil
}

// NewRand returns a generator seeded with seed, or with the clock when seed is nil.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Question is one question object. Fields keep the order they had in the
// source document so rewritten files diff cleanly.
type Question struct {
	keys   []string
	fields map[string]json.RawMessage
}

// Field returns the raw value stored under name.
func (q *Question) Field(name string) (json.RawMessage, bool) {
	v, ok := q.fields[name]
	return v, ok
}

// Keys returns the field names in document order.
func (q *Question) Keys() []string {
	return append([]string(nil), q.keys...)
}

func (q *Question) set(name string, value json.RawMessage) {
	if _, ok := q.fields[name]; !ok {
		q.keys = append(q.keys, name)
	}
	q.fields[name] = value
}

func (q *Question) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("question must be an object")
	}

	q.keys = nil
	q.fields = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		q.set(name, value)
	}
	_, err = dec.Token()
	return err
}

func (q *Question) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range q.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(q.fields[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape is json.Marshal without the <, > and & escaping.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Questions shuffles every question of a plain JSON array document, in order,
// drawing from rng. Fields other than options and answer are kept.
func Questions(data []byte, rng *rand.Rand) ([]*Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("parse input: invalid JSON")
		}
		return nil, &StructureError{Index: -1, Reason: "top-level value must be an array of questions"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	out := make([]*Question, 0, len(items))
	for i, item := range items {
		q, err := shuffleOne(i, item, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func shuffleOne(i int, item json.RawMessage, rng *rand.Rand) (*Question, error) {
	q := &Question{}
	if err := json.Unmarshal(item, q); err != nil {
		return nil, &StructureError{Index: i, Reason: "question must be an object"}
	}

	rawOptions, ok := q.Field("options")
	if !ok {
		return nil, &StructureError{Index: i, Reason: "missing options"}
	}
	var options []json.RawMessage
	if err := json.Unmarshal(rawOptions, &options); err != nil || options == nil {
		return nil, &StructureError{Index: i, Reason: "options must be an array"}
	}

	rawAnswer, ok := q.Field("answer")
	if !ok {
		return nil, &StructureError{Index: i, Reason: "missing answer"}
	}
	var answer []int
	if err := json.Unmarshal(rawAnswer, &answer); err != nil || answer == nil {
		return nil, &StructureError{Index: i, Reason: "answer must be an array of integers"}
	}

	shuffled, answers, err := Permute(options, answer, rng)
	if err != nil {
		return nil, &StructureError{Index: i, Reason: err.Error()}
	}

	encodedOptions, err := marshalNoEscape(shuffled)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	encodedAnswer, err := marshalNoEscape(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answer: %w", err)
	}
	q.set("options", encodedOptions)
	q.set("answer", encodedAnswer)
	return q, nil
}

// File shuffles the question file at in and writes the result to out, or back
// to in when out is empty. It returns the number of questions written.
func File(in, out string, seed *int64) (int, error) {
	if out == "" {
		out = in
	}
	data, err := os.ReadFile(in)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInputNotFound, in)
		}
		return 0, fmt.Errorf("read input: %w", err)
	}

	questions, err := Questions(data, NewRand(seed))
	if err != nil {
		return 0, err
	}

	encoded, err := Encode(questions)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return 0, fmt.Errorf("write output: %w", err)
	}
	return len(questions), nil
}

// Encode renders questions with four-space indentation and without escaping
// HTML characters, so option text stays readable in the file.
func Encode(questions []*Question) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(questions); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return buf.Bytes(), nil
}
