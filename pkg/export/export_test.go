package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"rank", "title", "enrollment"},
		Rows: []map[string]string{
			{"rank": "1", "title": "Go, the language", "enrollment": "5"},
			{"rank": "2", "title": "Databases", "enrollment": "3"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "rank,title,enrollment\n1,\"Go, the language\",5\n2,Databases,3\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Popular classes")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
