package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectFileTypeJSONRoundTripsTriState(t *testing.T) {
	cases := []struct {
		name     string
		fileType FileTypePolicy
	}{
		{"unset accepts any extension", mo.None[[]string]()},
		{"no_submit whitelist", mo.Some([]string{})},
		{"explicit whitelist", mo.Some([]string{"pdf", "docx"})},
	}

	for _, tc := range cases {
		inj := Inject{UUID: uuid.New(), Name: tc.name, FileType: tc.fileType}

		data, err := json.Marshal(inj)
		require.NoError(t, err)

		var decoded Inject
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, inj.FileType, decoded.FileType)
		assert.Equal(t, inj.responseRequired(), decoded.responseRequired())
	}
}

func TestInjectFileTypeNoneMarshalsAsNullNotEmptyArray(t *testing.T) {
	inj := Inject{Name: "freeform", FileType: mo.None[[]string]()}
	data, err := json.Marshal(inj)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file_type":null`)
}
