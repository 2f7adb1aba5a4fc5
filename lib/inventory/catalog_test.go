package inventory

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueImages(c Catalog) []*Image {
	return sortImages(lo.Uniq(lo.Values(c)))
}

func TestBuildCatalog(t *testing.T) {
	catalog, warnings := BuildCatalog([]RawImage{
		{Tags: []string{"b/img:1", "b/img:stable", "b/img:latest"}, Created: "2023-05-01T12:30:00Z", Size: 1 << 20},
		{Tags: []string{"a/img:1"}, Created: "2023-05-02T12:30:00Z"},
		{Tags: []string{}},
		{Tags: []string{"noseparator"}},
	})

	require.Len(t, warnings, 2)
	assert.ErrorIs(t, warnings[0], ErrMalformedImageReference)
	assert.ErrorIs(t, warnings[1], ErrMalformedImageReference)
	assert.Equal(t, "noseparator", warnings[1].Identifier)

	aliases := lo.Keys(catalog)
	sort.Strings(aliases)
	assert.Equal(t, []string{"a/img:1", "b/img:1", "b/img:latest", "b/img:stable"}, aliases)
	assert.Same(t, catalog["b/img:1"], catalog["b/img:latest"])
	assert.Same(t, catalog["b/img:1"], catalog["b/img:stable"])

	unique := uniqueImages(catalog)
	require.Len(t, unique, 2)
	assert.Equal(t, "a/img", unique[0].Repository)
	assert.Equal(t, "b/img", unique[1].Repository)
	assert.Equal(t, []string{"b/img:stable", "b/img:latest"}, unique[1].AdditionalNames)
	assert.Empty(t, unique[0].AdditionalNames)
}

func TestSortImages_SameRepository(t *testing.T) {
	catalog, warnings := BuildCatalog([]RawImage{
		{Tags: []string{"repo/img:v2"}, Created: "2024-01-02T00:00:00Z"},
		{Tags: []string{"repo/img:v10"}, Created: "2024-01-03T00:00:00Z"},
		{Tags: []string{"repo/img:v1", "repo/img:stable"}, Created: "2024-01-01T00:00:00Z"},
		{Tags: []string{"repo/img:v1", "repo/img:latest"}, Created: "2024-01-01T00:00:00Z"},
	})
	require.Empty(t, warnings)

	sorted := sortImages([]*Image{catalog["repo/img:v2"], catalog["repo/img:stable"], catalog["repo/img:v10"], catalog["repo/img:latest"]})
	got := lo.Map(sorted, func(img *Image, _ int) []string { return img.Identifiers })
	assert.Equal(t, [][]string{
		{"repo/img:v1", "repo/img:latest"},
		{"repo/img:v1", "repo/img:stable"},
		{"repo/img:v10"},
		{"repo/img:v2"},
	}, got)
}

func TestBuildCatalog_UnparsedTimestamp(t *testing.T) {
	catalog, warnings := BuildCatalog([]RawImage{
		{Tags: []string{"repo/img:v1"}, Created: "01/02/2023"},
	})

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrMalformedTimestamp)
	assert.Equal(t, "repo/img:v1", warnings[0].Identifier)

	img, ok := catalog.Lookup("repo/img:v1")
	require.True(t, ok)
	assert.False(t, img.TimestampParsed)
	assert.Equal(t, "01/02/2023", img.Created)
}

func TestBuildCatalog_DoesNotAliasInput(t *testing.T) {
	tags := []string{"repo/img:v1", "repo/img:latest"}
	catalog, _ := BuildCatalog([]RawImage{{Tags: tags, Created: "2023-01-01T00:00:00Z"}})

	tags[0] = "mutated:x"
	assert.Equal(t, "repo/img:v1", catalog["repo/img:v1"].Canonical())
}

func TestWarningJSON(t *testing.T) {
	data, err := json.Marshal(Warning{
		Kind:       ErrMalformedTimestamp,
		Identifier: "repo/img:v1",
		Detail:     `created "bad"`,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"malformed timestamp","identifier":"repo/img:v1","detail":"created \"bad\""}`, string(data))
}

func TestRawWorkerUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RawWorker
	}{
		{
			name:     "autograding key",
			input:    `{"capabilities":["default"],"num_autograding_workers":4,"enabled":true}`,
			expected: RawWorker{Capabilities: []string{"default"}, NumWorkers: 4, Enabled: true},
		},
		{
			name:     "short key",
			input:    `{"capabilities":["python"],"num_workers":2,"enabled":false}`,
			expected: RawWorker{Capabilities: []string{"python"}, NumWorkers: 2},
		},
		{
			name:     "no count",
			input:    `{"capabilities":[]}`,
			expected: RawWorker{Capabilities: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w RawWorker
			require.NoError(t, json.Unmarshal([]byte(tt.input), &w))
			assert.Equal(t, tt.expected, w)
		})
	}
}
