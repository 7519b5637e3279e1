package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	format := Normalize(&AttributeGroup{Code: "other"})

	data, err := json.Marshal(format)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"other","sort_order":0,"attributes":[],"labels":{}}`, string(data))

	format = Normalize(&AttributeGroup{
		Code:       "marketing",
		SortOrder:  3,
		Attributes: []string{"sku"},
		Labels:     map[string]string{"en_US": "Marketing", "fr_FR": ""},
	})
	assert.Equal(t, map[string]string{"en_US": "Marketing"}, format.Labels)
	assert.Equal(t, []string{"sku"}, format.Attributes)
}

func TestLabelLocales(t *testing.T) {
	g := &AttributeGroup{Labels: map[string]string{"fr_FR": "b", "de_DE": "c", "en_US": "a"}}
	assert.Equal(t, []string{"de_DE", "en_US", "fr_FR"}, g.LabelLocales())
}

func TestETag(t *testing.T) {
	a := StandardFormat{
		Code:       "marketing",
		Attributes: []string{"sku"},
		Labels:     map[string]string{"en_US": "Marketing", "fr_FR": "Marketing FR"},
	}
	b := StandardFormat{
		Code:       "marketing",
		Attributes: []string{"sku"},
		Labels:     map[string]string{"fr_FR": "Marketing FR", "en_US": "Marketing"},
	}

	tagA, err := ETag(a)
	require.NoError(t, err)
	tagB, err := ETag(b)
	require.NoError(t, err)
	assert.Equal(t, tagA, tagB)
	assert.Len(t, tagA, 66)
	assert.Equal(t, byte('"'), tagA[0])

	b.SortOrder = 1
	tagC, err := ETag(b)
	require.NoError(t, err)
	assert.NotEqual(t, tagA, tagC)
}
