package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideEffectJSONRoundTrip(t *testing.T) {
	cases := []SideEffect{
		DeleteService{Name: "web"},
		AddService{Service: Service{Name: "cache", Command: "redis-cli ping", Multiplier: 2}},
		EditService{OldName: "web", Service: Service{Name: "frontend", Command: "curl -f localhost", Multiplier: 1}},
	}

	for _, se := range cases {
		data, err := MarshalSideEffect(se)
		require.NoError(t, err)

		decoded, err := UnmarshalSideEffect(data)
		require.NoError(t, err)
		assert.Equal(t, se, decoded)
	}
}

func TestSideEffectListJSONRoundTrip(t *testing.T) {
	list := sideEffectList{
		DeleteService{Name: "web"},
		AddService{Service: Service{Name: "cache", Command: "redis-cli ping", Multiplier: 2}},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded sideEffectList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, list, decoded)
}

func TestUnmarshalSideEffectRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalSideEffect([]byte(`{"type":"nuke_everything"}`))
	require.Error(t, err)
}

func TestInjectMarshalsSideEffectsAsTaggedArray(t *testing.T) {
	inj := Inject{
		Name:        "Patch it",
		SideEffects: sideEffectList{DeleteService{Name: "web"}},
	}
	data, err := json.Marshal(inj)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"delete_service"`)
}
