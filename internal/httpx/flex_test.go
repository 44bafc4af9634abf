package httpx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	cases := map[string]string{
		`{"v":"19.99"}`: "19.99",
		`{"v":19.99}`:   "19.99",
		`{"v":" 5 "}`:   "5",
		`{"v":true}`:    "true",
		`{"v":"true"}`:  "true",
		`{"v":null}`:    "",
		`{}`:            "",
		`{"v":-1}`:      "-1",
	}
	for in, want := range cases {
		var got struct {
			V FlexString `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got.V.String(), in)
	}
}

func TestFlexStringRejectsComposite(t *testing.T) {
	var got struct {
		V FlexString `json:"v"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"v":[1]}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"v":{"a":1}}`), &got))
}

func TestFlexList(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		var got struct {
			V FlexList `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"v":["red"," blue ",""]}`), &got))
		assert.Equal(t, FlexList{"red", "blue"}, got.V)
	})

	t.Run("comma separated string", func(t *testing.T) {
		var got struct {
			V FlexList `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"v":"red, blue,,green"}`), &got))
		assert.Equal(t, FlexList{"red", "blue", "green"}, got.V)
	})

	t.Run("null", func(t *testing.T) {
		var got struct {
			V FlexList `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"v":null}`), &got))
		assert.Nil(t, got.V)
	})
}
