package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelSheetWriter_Write(t *testing.T) {
	w := NewExcelSheetWriter()

	content, err := w.Write("Servisi", []string{"ID", "Klijent", "Cena"}, [][]any{
		{uint(1), "Petar Petrović", 1500.5},
		{uint(2), "Ana Jovanović", nil},
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Servisi"}, f.GetSheetList())

	rows, err := f.GetRows("Servisi")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Klijent", "Cena"}, rows[0])
	assert.Equal(t, "Petar Petrović", rows[1][1])
	assert.Equal(t, "1500.5", rows[1][2])
	assert.Equal(t, "2", rows[2][0])
}

func TestExcelSheetWriter_HeaderOnly(t *testing.T) {
	content, err := NewExcelSheetWriter().Write("Rezervni delovi", []string{"ID"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Rezervni delovi")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, minColumnWidth, clampWidth(2))
	assert.Equal(t, 25, clampWidth(25))
	assert.Equal(t, maxColumnWidth, clampWidth(500))
}
