package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableTracksPresence(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T"}`), &req))
	assert.False(t, req.Description.Set)
	assert.False(t, req.Category.Set)

	req = UpdateBookRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"description":null,"category":"poetry"}`), &req))
	assert.True(t, req.Description.Set)
	assert.Nil(t, req.Description.Value)
	require.True(t, req.Category.Set)
	require.NotNil(t, req.Category.Value)
	assert.Equal(t, "poetry", *req.Category.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"category":12}`), &req))
}
