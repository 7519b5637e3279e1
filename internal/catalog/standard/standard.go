// Package standard decodes attribute groups submitted in the standard format.
//
// The raw body goes through an ordered pipeline and the first failing step ends it:
//
//  1. Parse - the body must be a UTF-8 JSON object or array (ParseError otherwise)
//  2. CheckProperties - every top level key must be a known property
//  3. CheckTypes - each property must have the expected primitive type
//
// Steps 2 and 3 report only the first offending property, in document order.
// Business rules (uniqueness, locale existence...) are not checked here, see package catalog.
//
// The package has no storage dependencies so it can also be used offline (pimctl validate).
package standard

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/tidwall/gjson"
)

// Property names of the attribute group standard format.
const (
	PropertyCode       = "code"
	PropertySortOrder  = "sort_order"
	PropertyAttributes = "attributes"
	PropertyLabels     = "labels"
)

var knownProperties = map[string]bool{
	PropertyCode:       true,
	PropertySortOrder:  true,
	PropertyAttributes: true,
	PropertyLabels:     true,
}

// Label is a translated label. Labels keep the order in which they were submitted.
type Label struct {
	Locale string
	Value  string
}

// Document is a structurally valid attribute group.
type Document struct {
	Code       string
	SortOrder  int
	Attributes []string

	// Labels with an empty or null value are not included
	Labels []Label
}

// Step is one stage of the structural pipeline.
// It returns nil or an *apierr.Error.
type Step func(doc gjson.Result) error

// Pipeline lists the checks run by Decode after the body has been parsed.
var Pipeline = []Step{
	CheckProperties,
	CheckTypes,
}

// Decode parses raw, runs the pipeline and returns the decoded document.
func Decode(raw []byte) (*Document, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	for _, step := range Pipeline {
		if err := step(doc); err != nil {
			return nil, err
		}
	}

	return build(doc), nil
}

// Parse checks the body is a JSON object and returns the parsed document.
//
// A top level JSON array is accepted and its indexes are treated as property names.
func Parse(raw []byte) (gjson.Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return gjson.Result{}, apierr.WrapParseError(fmt.Errorf("empty request body"))
	}
	if !utf8.Valid(trimmed) {
		return gjson.Result{}, apierr.WrapParseError(fmt.Errorf("request body is not valid UTF-8"))
	}
	if !gjson.ValidBytes(trimmed) {
		return gjson.Result{}, apierr.WrapParseError(fmt.Errorf("request body is not valid JSON"))
	}

	doc := gjson.ParseBytes(trimmed)
	if !doc.IsObject() && !doc.IsArray() {
		return gjson.Result{}, apierr.WrapParseError(fmt.Errorf("request body is a JSON %s, expected an object", typeName(doc)))
	}
	return doc, nil
}

// CheckProperties rejects the first property (in document order) that is not part of the standard format.
func CheckProperties(doc gjson.Result) error {
	for _, e := range entries(doc) {
		if !knownProperties[e.key] {
			return apierr.NewSchemaError(fmt.Sprintf(`Property "%s" does not exist.`, e.key))
		}
	}
	return nil
}

// CheckTypes checks the type of each property in document order.
//
// code and sort_order must be scalar (or null), attributes and labels must be arrays
// whose values are scalar (or null). sort_order must also be integer-like.
func CheckTypes(doc gjson.Result) error {
	for _, e := range entries(doc) {
		switch e.key {
		case PropertyCode:
			if err := expectScalar(e.key, e.value); err != nil {
				return err
			}
		case PropertySortOrder:
			if err := expectScalar(e.key, e.value); err != nil {
				return err
			}
			if _, ok := integerValue(e.value); !ok {
				return apierr.NewSchemaError(fmt.Sprintf(`Property "%s" expects an integer as data, "%s" given.`, e.key, typeName(e.value)))
			}
		case PropertyAttributes, PropertyLabels:
			if err := expectArrayOfScalars(e.key, e.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func expectScalar(property string, v gjson.Result) error {
	if v.Type == gjson.JSON {
		return apierr.NewSchemaError(fmt.Sprintf(`Property "%s" expects a scalar as data, "%s" given.`, property, typeName(v)))
	}
	return nil
}

func expectArrayOfScalars(property string, v gjson.Result) error {
	if v.Type != gjson.JSON {
		return apierr.NewSchemaError(fmt.Sprintf(`Property "%s" expects an array as data, "%s" given.`, property, typeName(v)))
	}
	for _, item := range entries(v) {
		if item.value.Type == gjson.JSON {
			return apierr.NewSchemaError(fmt.Sprintf(
				`Property "%s" expects an array with valid data, one of the "%s" values is not a scalar.`, property, property))
		}
	}
	return nil
}

// build converts a document that passed the pipeline. Missing properties get their defaults.
func build(doc gjson.Result) *Document {
	d := &Document{
		Attributes: []string{},
		Labels:     []Label{},
	}

	for _, e := range entries(doc) {
		switch e.key {
		case PropertyCode:
			d.Code = scalarString(e.value)
		case PropertySortOrder:
			d.SortOrder, _ = integerValue(e.value)
		case PropertyAttributes:
			seen := make(map[string]bool)
			for _, item := range entries(e.value) {
				code := scalarString(item.value)
				if seen[code] {
					continue
				}
				seen[code] = true
				d.Attributes = append(d.Attributes, code)
			}
		case PropertyLabels:
			for _, item := range entries(e.value) {
				value := scalarString(item.value)
				if value == "" {
					continue
				}
				d.Labels = append(d.Labels, Label{Locale: item.key, Value: value})
			}
		}
	}
	return d
}

// LabelMap returns the labels keyed by locale code.
func (d *Document) LabelMap() map[string]string {
	labels := make(map[string]string, len(d.Labels))
	for _, l := range d.Labels {
		labels[l.Locale] = l.Value
	}
	return labels
}

type entry struct {
	key   string
	value gjson.Result
}

// entries returns the members of an object or array in document order.
// Array members are keyed by their index. When an object key is repeated the
// last value wins but the key keeps its first position.
func entries(v gjson.Result) []entry {
	var out []entry
	if !v.IsObject() && !v.IsArray() {
		return out
	}

	positions := make(map[string]int)
	idx := 0
	isObject := v.IsObject()
	v.ForEach(func(key, value gjson.Result) bool {
		k := strconv.Itoa(idx)
		if isObject {
			k = key.String()
		}
		idx++

		if pos, ok := positions[k]; ok {
			out[pos].value = value
			return true
		}
		positions[k] = len(out)
		out = append(out, entry{key: k, value: value})
		return true
	})
	return out
}

// typeName returns the name used in error messages for the type of v.
func typeName(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "NULL"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		if isIntegerLiteral(v.Raw) {
			return "integer"
		}
		return "double"
	case gjson.String:
		return "string"
	default:
		return "array"
	}
}

func isIntegerLiteral(raw string) bool {
	_, err := strconv.ParseInt(raw, 10, 64)
	return err == nil
}

// scalarString converts a scalar to its string form: booleans become "1" or "", null becomes "".
func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if isIntegerLiteral(v.Raw) {
			return v.Raw
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.True:
		return "1"
	default:
		return ""
	}
}

// integerValue returns the integer held by v. null is 0, numeric strings are accepted.
func integerValue(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Null:
		return 0, true
	case gjson.Number:
		if !isIntegerLiteral(v.Raw) {
			return 0, false
		}
		n, err := strconv.Atoi(v.Raw)
		return n, err == nil
	case gjson.String:
		n, err := strconv.Atoi(v.Str)
		return n, err == nil
	default:
		return 0, false
	}
}
