// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangagraph/internal/platform/sparql"
)

/*
TestResolver_Resolve normalizes rows into attributes.
*/
func TestResolver_Resolve(t *testing.T) {
	fake := narutoGraph()
	resolver := NewResolver(fake)

	genres, err := resolver.Resolve(context.Background(), EntityID(narutoURI), KindGenre)
	require.NoError(t, err)
	assert.Equal(t, []Attribute{
		{ID: "http://dbpedia.org/resource/Adventure_fiction", Label: "Adventure (genre)"},
		{ID: "http://dbpedia.org/resource/Martial_arts", Label: "Martial arts"},
	}, genres)
}

/*
TestResolver_FallbackLabel derives a label when the graph has none.
*/
func TestResolver_FallbackLabel(t *testing.T) {
	fake := &fakeQuerier{}
	fake.on([]sparql.Row{
		sparql.NewRow("magazine_URI", "http://dbpedia.org/resource/Weekly_Shōnen_Jump", "magazine_label", ""),
		sparql.NewRow("magazine_label", "orphan label"),
	}, nil, attributeMarker(KindMagazine))

	magazines, err := NewResolver(fake).Resolve(context.Background(), EntityID(narutoURI), KindMagazine)
	require.NoError(t, err)
	require.Len(t, magazines, 1)
	assert.Equal(t, "Weekly Shōnen Jump", magazines[0].Label)
}

/*
TestResolver_UnknownKind yields nothing without querying the endpoint.
*/
func TestResolver_UnknownKind(t *testing.T) {
	fake := &fakeQuerier{}

	for _, kind := range []AttributeKind{"", "colorist", "Author", "genres"} {
		values, err := NewResolver(fake).Resolve(context.Background(), EntityID(narutoURI), kind)
		assert.NoError(t, err)
		assert.Empty(t, values)
	}
	assert.Empty(t, fake.queries)
}

/*
TestResolver_PropagatesEndpointError wraps the transport cause.
*/
func TestResolver_PropagatesEndpointError(t *testing.T) {
	fake := (&fakeQuerier{}).on(nil, errEndpointDown, attributeMarker(KindStudio))

	values, err := NewResolver(fake).Resolve(context.Background(), EntityID(narutoURI), KindStudio)
	assert.Nil(t, values)
	assert.ErrorIs(t, err, errEndpointDown)
	assert.Contains(t, err.Error(), "studio")
}
