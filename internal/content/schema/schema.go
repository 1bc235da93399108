// Package schema declares content sections: their key, the site area they
// belong to, an optional default payload and the rules a saved payload must
// satisfy. Sections are registered once at startup and looked up by key.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/globalsolutions/website/backend/internal/validation"
)

// Section is one editable block of the site.
type Section interface {
	Key() string
	Area() string
	HasDefault() bool
	// Default returns the payload materialized on first read.
	Default() (json.RawMessage, error)
	// Prepare trims and validates raw, returning the payload to store.
	// Validation failures are *validation.Error.
	Prepare(raw json.RawMessage) (json.RawMessage, error)
}

type typed[T any] struct {
	key, area string
	def       *T
	messages  validation.Messages
}

// Define declares a validated section whose payload decodes into T. The
// struct tags on T carry the rules; msgs overrides the message per field.
func Define[T any](key, area string, def T, msgs validation.Messages) Section {
	return &typed[T]{key: key, area: area, def: &def, messages: msgs}
}

// DefineNoDefault is Define for sections that must be saved before they can be read.
func DefineNoDefault[T any](key, area string, msgs validation.Messages) Section {
	return &typed[T]{key: key, area: area, messages: msgs}
}

func (s *typed[T]) Key() string      { return s.key }
func (s *typed[T]) Area() string     { return s.area }
func (s *typed[T]) HasDefault() bool { return s.def != nil }

func (s *typed[T]) Default() (json.RawMessage, error) {
	if s.def == nil {
		return nil, fmt.Errorf("section %s has no default", s.key)
	}
	return json.Marshal(s.def)
}

// Prepare validates against T but stores the caller's own document with its
// strings trimmed, so fields T does not declare survive and omitted optional
// fields stay omitted.
func (s *typed[T]) Prepare(raw json.RawMessage) (json.RawMessage, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, &validation.Error{Subject: s.key, Details: []string{"Invalid JSON payload: " + err.Error()}}
	}
	validation.TrimStrings(&doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(out, &v); err != nil {
		return nil, &validation.Error{Subject: s.key, Details: []string{"Invalid JSON payload: " + err.Error()}}
	}
	if err := validation.Struct(s.key, v, s.messages); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeDocument reads exactly one JSON value. Numbers keep their literal form.
func decodeDocument(raw []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return doc, nil
}

type raw struct {
	key, area string
}

// Raw declares a section stored verbatim: any JSON object or array, no default.
func Raw(key, area string) Section {
	return &raw{key: key, area: area}
}

func (r *raw) Key() string      { return r.key }
func (r *raw) Area() string     { return r.area }
func (r *raw) HasDefault() bool { return false }

func (r *raw) Default() (json.RawMessage, error) {
	return nil, fmt.Errorf("section %s has no default", r.key)
}

func (r *raw) Prepare(payload json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, &validation.Error{Subject: r.key, Details: []string{"Invalid JSON payload"}}
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, &validation.Error{Subject: r.key, Details: []string{"Payload must be a JSON object or array"}}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
