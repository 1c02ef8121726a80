package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"a": 1}, "yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json|edn")
	assert.Empty(t, buf.String())
}

func TestWriteJSON_Envelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Envelope{Data: map[string]any{"valid": true}}, "", false))
	assert.Equal(t, `{"data":{"valid":true}}`+"\n", buf.String())
}

func TestWriteEDN_KeywordsNumbersAndInstants(t *testing.T) {
	v := map[string]any{
		"angle":       45.5,
		"angle_error": nil,
		"count":       12,
		"time":        time.Date(2024, 3, 1, 9, 10, 0, 0, time.UTC),
		"label":       "West Down",
		"ok":          true,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, v, false))
	assert.Equal(t,
		`{:angle 45.5 :angle-error nil :count 12 :label "West Down" :ok true :time #inst "2024-03-01T09:10:00Z"}`+"\n",
		buf.String())
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, Envelope{Data: []any{"a", "b"}, Hints: []string{"geomag types"}}, true))
	want := strings.Join([]string{
		"{",
		"  :data [",
		`    "a"`,
		`    "b"`,
		"  ]",
		"  :hints [",
		`    "geomag types"`,
		"  ]",
		"}",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteEDN_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, map[string]any{"xs": []any{}, "m": map[string]any{}}, false))
	assert.Equal(t, "{:m {} :xs []}\n", buf.String())
}

func TestIsInstant(t *testing.T) {
	assert.True(t, isInstant("2024-03-01T09:10:00Z"))
	assert.True(t, isInstant("2024-03-01T09:10:00.5+02:00"))
	assert.False(t, isInstant("09:10:00"))
	assert.False(t, isInstant("2024-03-01 09:10:00"))
}
