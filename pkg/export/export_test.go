package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderWithAppendedRows(t *testing.T) {
	data := Dataset{Headers: []string{"Form", "Submitted By"}}
	data.Append(map[string]string{"Form": "Mess quality", "Submitted By": "stu1"})
	data.Append(map[string]string{"Form": "Library hours"})

	payload, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	text := string(payload)
	assert.True(t, strings.HasPrefix(text, "\xef\xbb\xbf"), "output carries a UTF-8 BOM")
	assert.Contains(t, text, "Form,Submitted By")
	assert.Contains(t, text, "Mess quality,stu1")
	assert.Contains(t, text, "Library hours,\n", "missing keys render as blanks")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	data := Dataset{Headers: []string{"Form", "Answers"}}
	data.Append(map[string]string{"Form": "Mess quality", "Answers": strings.Repeat("x", 200)})

	payload, err := NewPDFExporter().Render(data, "hostel feedback")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short"))

	long := strings.Repeat("a", 100)
	got := truncateCell(long)
	assert.Len(t, []rune(got), maxCellRunes)
	assert.True(t, strings.HasSuffix(got, "..."))
}
