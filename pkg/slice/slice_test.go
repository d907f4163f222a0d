// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangagraph/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"SEINEN", "SHŌNEN"}, slice.Map([]string{"seinen", "shōnen"}, strings.ToUpper))
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	nonEmpty := func(s string) bool { return s != "" }
	assert.Equal(t, []string{"a", "b"}, slice.Filter([]string{"a", "", "b"}, nonEmpty))
	assert.Nil(t, slice.Filter([]string{""}, nonEmpty))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"Shueisha", "Kodansha"}, slice.Unique([]string{"Shueisha", "Kodansha", "Shueisha"}))
	assert.Empty(t, slice.Unique([]string{}))
	assert.Nil(t, slice.Unique[string](nil))
}
