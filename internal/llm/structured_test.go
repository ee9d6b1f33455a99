package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Metric     string  `json:"metric"`
	Confidence float64 `json:"confidence"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"metric":"hot","confidence":0.95}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "hot", result.Metric)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"metric\":\"converted\",\"confidence\":0.88}\n```"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "converted", result.Metric)
	assert.Equal(t, 0.88, result.Confidence)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is the parsed question:\n{\"metric\":\"lost\",\"confidence\":0.72}\nHope that helps!"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "lost", result.Metric)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	type nested struct {
		Metric string            `json:"metric"`
		Args   map[string]string `json:"args"`
	}
	raw := `{"metric":"total","args":{"location":"New York"}}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "total", result.Metric)
	assert.Equal(t, "New York", result.Args["location"])
}

func TestExtractJSON_BracesInsideStringValue(t *testing.T) {
	raw := `{"metric":"hot","args":"{weird}"}` + "\nextra }"
	type withArgs struct {
		Metric string `json:"metric"`
		Args   string `json:"args"`
	}
	result, err := ExtractJSON[withArgs](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "{weird}", result.Args)
}

func TestExtractJSON_LineComment(t *testing.T) {
	raw := "{\"metric\":\"warm\", // the user asked about warm leads\n\"confidence\":0.9}"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "warm", result.Metric)
}

func TestExtractJSON_LeadingDecimal(t *testing.T) {
	raw := `{"metric":"cold","confidence":.85}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, result.Confidence)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw := "I don't know what you mean."
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	raw := `{"metric":"hot", broken}`
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"metric":"hot","confidence":1.5}`
	validate := func(p testPayload) error {
		if p.Confidence < 0 || p.Confidence > 1 {
			return fmt.Errorf("confidence must be in [0,1], got %f", p.Confidence)
		}
		return nil
	}
	_, err := ExtractJSON(raw, validate)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSON_ValidationSuccess(t *testing.T) {
	raw := `{"metric":"converted","confidence":0.9}`
	validate := func(p testPayload) error {
		if p.Confidence < 0 || p.Confidence > 1 {
			return fmt.Errorf("confidence out of range")
		}
		return nil
	}
	result, err := ExtractJSON(raw, validate)
	require.NoError(t, err)
	assert.Equal(t, "converted", result.Metric)
}

func TestExtractJSON_MultipleFences(t *testing.T) {
	raw := "Some text\n```\n{\"metric\":\"total\",\"confidence\":0.8}\n```\nMore text"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "total", result.Metric)
}
