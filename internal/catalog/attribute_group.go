// Package catalog implements the attribute group part of the product catalog:
// the domain model, its standard format normalizer, the business rules checked
// before an attribute group is created and the stores that persist it.
//
// Requests are decoded by package standard (structural checks), validated here
// (semantic checks) and only then persisted, so a failed request never writes anything.
package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog/standard"
)

// AttributeGroup is a named collection of product attributes sharing a display order and translated labels.
type AttributeGroup struct {
	ID        uuid.UUID
	Code      string
	SortOrder int

	// Attributes holds attribute codes in display order
	Attributes []string

	// Labels is keyed by locale code. Empty labels are never stored.
	Labels map[string]string

	Created time.Time
	Updated time.Time
}

// StandardFormat is the canonical JSON representation of an attribute group.
type StandardFormat struct {
	Code       string            `json:"code"`
	SortOrder  int               `json:"sort_order"`
	Attributes []string          `json:"attributes"`
	Labels     map[string]string `json:"labels"`
}

// Normalize returns the standard format of group.
// attributes is always a list and labels always an object, even when empty.
func Normalize(group *AttributeGroup) StandardFormat {
	attributes := make([]string, len(group.Attributes))
	copy(attributes, group.Attributes)

	labels := make(map[string]string, len(group.Labels))
	for locale, label := range group.Labels {
		if label == "" {
			continue
		}
		labels[locale] = label
	}

	return StandardFormat{
		Code:       group.Code,
		SortOrder:  group.SortOrder,
		Attributes: attributes,
		Labels:     labels,
	}
}

// LabelLocales returns the locales that have a label, sorted.
func (g *AttributeGroup) LabelLocales() []string {
	locales := make([]string, 0, len(g.Labels))
	for locale := range g.Labels {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// fromDocument builds a new attribute group from a decoded standard format document.
func fromDocument(doc *standard.Document) *AttributeGroup {
	attributes := make([]string, len(doc.Attributes))
	copy(attributes, doc.Attributes)

	return &AttributeGroup{
		ID:         uuid.New(),
		Code:       doc.Code,
		SortOrder:  doc.SortOrder,
		Attributes: attributes,
		Labels:     doc.LabelMap(),
	}
}

// clone returns a deep copy so callers cannot mutate stored groups.
func (g *AttributeGroup) clone() *AttributeGroup {
	c := *g
	c.Attributes = make([]string, len(g.Attributes))
	copy(c.Attributes, g.Attributes)
	c.Labels = make(map[string]string, len(g.Labels))
	for k, v := range g.Labels {
		c.Labels[k] = v
	}
	return &c
}
