package verify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeABIString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"valid array", `[{"type":"function","name":"owner"}]`, true},
		{"empty string", "", false},
		{"not verified placeholder", "Contract source code not verified", false},
		{"empty array", "[]", false},
		{"object not array", `{"abi":[]}`, false},
		{"garbage", "hello", false},
		{"leading whitespace", ` [{"type":"function","name":"owner"}]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeABIString(tt.in)
			if tt.ok {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestExtractABIFromMetadata(t *testing.T) {
	t.Run("top level abi", func(t *testing.T) {
		meta := json.RawMessage(`{"abi":[{"type":"function","name":"owner"}]}`)
		assert.NotNil(t, extractABIFromMetadata(meta))
	})

	t.Run("output contracts path", func(t *testing.T) {
		meta := json.RawMessage(`{
			"output": {
				"contracts": {
					"Token.sol": {
						"Token": {"abi": [{"type":"function","name":"owner"}]}
					}
				}
			}
		}`)
		assert.NotNil(t, extractABIFromMetadata(meta))
	})

	t.Run("output abi fallback", func(t *testing.T) {
		meta := json.RawMessage(`{"output":{"abi":[{"type":"function","name":"owner"}]}}`)
		assert.NotNil(t, extractABIFromMetadata(meta))
	})

	t.Run("stringified metadata", func(t *testing.T) {
		meta := json.RawMessage(`"{\"abi\":[{\"type\":\"function\",\"name\":\"owner\"}]}"`)
		assert.NotNil(t, extractABIFromMetadata(meta))
	})

	t.Run("no abi anywhere", func(t *testing.T) {
		assert.Nil(t, extractABIFromMetadata(json.RawMessage(`{"output":{}}`)))
		assert.Nil(t, extractABIFromMetadata(json.RawMessage(`{"abi":[]}`)))
	})
}

func TestSourceTextFromMetadata(t *testing.T) {
	meta := json.RawMessage(`{
		"sources": {
			"A.sol": {"content": "contract A {}"},
			"B.sol": {"content": "contract B {}"},
			"C.sol": {"keccak256": "0xdead"}
		}
	}`)
	out := sourceTextFromMetadata(meta)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "contract A {}")
	assert.Contains(t, out, "contract B {}")

	assert.Empty(t, sourceTextFromMetadata(json.RawMessage(`not json`)))
}
