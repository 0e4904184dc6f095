package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Shape is the top-level layout a persisted JSON document must have.
type Shape int

const (
	// ShapeObject is a mapping of field name to value (the draft document).
	ShapeObject Shape = iota
	// ShapeList is a list of mappings (the portfolio registry).
	ShapeList
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "object"
}

// profileSchema only pins down the keys other components read with a fixed
// type. Everything else in a document is free-form.
const profileSchema = `{
	"type": "object",
	"properties": {
		"email":         {"type": ["string", "null"]},
		"photo_path":    {"type": ["string", "null"]},
		"formacao":      {"type": ["array", "null"], "items": {"type": "object"}},
		"experiencia":   {"type": ["array", "null"], "items": {"type": "object"}},
		"design_config": {"type": ["object", "null"]}
	}
}`

var (
	schemas     = map[Shape]*gojsonschema.Schema{}
	entrySchema *gojsonschema.Schema
)

func init() {
	entrySchema = mustSchema(gojsonschema.NewStringLoader(profileSchema))
	schemas[ShapeObject] = entrySchema
	// registry items are checked one by one with ValidateEntry
	schemas[ShapeList] = mustSchema(gojsonschema.NewStringLoader(`{"type": "array"}`))
}

func mustSchema(l gojsonschema.JSONLoader) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(l)
	if err != nil {
		panic(fmt.Sprintf("model: invalid document schema: %v", err))
	}
	return s
}

// ValidateDocument checks a decoded JSON document against the layout expected
// for shape. It does not look at field contents beyond their JSON type.
func ValidateDocument(shape Shape, doc interface{}) error {
	schema, ok := schemas[shape]
	if !ok {
		return fmt.Errorf("unknown document shape %d", shape)
	}
	if err := validate(schema, doc); err != nil {
		return fmt.Errorf("%s document does not match schema: %w", shape, err)
	}
	return nil
}

// ValidateEntry checks one registry item against the profile layout.
func ValidateEntry(entry interface{}) error {
	if err := validate(entrySchema, entry); err != nil {
		return fmt.Errorf("registry entry does not match schema: %w", err)
	}
	return nil
}

func validate(schema *gojsonschema.Schema, doc interface{}) error {
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}
