package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocRenders(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, "/api/v1", doc["basePath"])

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{
		"/producers",
		"/producers/{id}",
		"/producers/{id}/harvests",
		"/producers/{id}/harvests/{harvest_id}",
		"/dashboard",
		"/dashboard/export",
	} {
		assert.Contains(t, paths, p)
	}
}
