package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_DecodeStringError(t *testing.T) {
	var res Result
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"error":"Duplicate name"}`), &res))

	require.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, "Duplicate name", res.Error.Message)
	assert.Empty(t, res.Error.Fields)
}

func TestResult_DecodeStructuredError(t *testing.T) {
	var res Result
	payload := `{"success":false,"error":{"name":"too short","locations":["missing address"]}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &res))

	require.NotNil(t, res.Error)
	assert.Empty(t, res.Error.Message)
	assert.Equal(t, "too short", res.Error.Fields["name"])
	assert.Equal(t, `["missing address"]`, res.Error.Fields["locations"])
}

func TestResult_DecodeInvalidError(t *testing.T) {
	var res Result
	require.Error(t, json.Unmarshal([]byte(`{"success":false,"error":42}`), &res))
}

func TestResult_Encode(t *testing.T) {
	data, err := json.Marshal(Failed("Duplicate name"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Duplicate name"}`, string(data))

	data, err = json.Marshal(FailedFields(map[string]string{"name": "required"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"name":"required"}}`, string(data))

	data, err = json.Marshal(Succeeded("abc123"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"id":"abc123"}`, string(data))
}
