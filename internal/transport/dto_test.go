package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCategoryRequest_ParentTriState(t *testing.T) {
	t.Parallel()

	var absent UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &absent))
	assert.False(t, absent.ParentID.Set)

	var null UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"parentId":null}`), &null))
	assert.True(t, null.ParentID.Set)
	assert.Nil(t, null.ParentID.Value)

	var set UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"parentId":7}`), &set))
	assert.True(t, set.ParentID.Set)
	require.NotNil(t, set.ParentID.Value)
	assert.EqualValues(t, 7, *set.ParentID.Value)
}
