package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// decodeResponse unwraps the APIResponse envelope and decodes Data into dest when given.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var body struct {
		Success bool                    `json:"success"`
		Data    json.RawMessage         `json:"data"`
		Error   *response.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	if dest != nil && len(body.Data) > 0 {
		require.NoError(t, json.Unmarshal(body.Data, dest))
	}

	return response.APIResponse{Success: body.Success, Error: body.Error}
}
