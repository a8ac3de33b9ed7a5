package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coderr/internal/service"
)

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, &service.BaseInfo{
		ReviewCount:          4,
		AverageRating:        4.5,
		BusinessProfileCount: 2,
		OfferCount:           7,
	}))

	out := buf.String()
	assert.Contains(t, out, "average rating")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "offers")
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	for _, name := range []string{"username", "email", "password"} {
		f := createAdminCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, []string{"true"}, f.Annotations["cobra_annotation_bash_completion_one_required_flag"])
	}
}
