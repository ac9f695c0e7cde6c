package par

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NormalizesLineEndings(t *testing.T) {
	doc := Parse("line one\r\nline two\r\nline three")

	assert.NotContains(t, doc.Text(), "\r")
	require.Len(t, doc.Lines(), 3)
	assert.Equal(t, "line two", doc.Lines()[1])
}

func TestParse_NFCNormalization(t *testing.T) {
	// Decomposed u + combining diaeresis folds to the precomposed form.
	doc := Parse("Patient name : Müller")

	assert.Contains(t, doc.Text(), "Müller")
	assert.NotContains(t, doc.Text(), "̈")
}

const tableHeader = `# === DATA DESCRIPTION FILE ======================================
.    Patient name                       :   PP_0001
# === PIXEL VALUES =============================================
# === IMAGE INFORMATION DEFINITION =============================
#  slice number                             (integer)
#  echo number                              (integer)
# === IMAGE INFORMATION ==========================================
#  sl ec  dyn ph ty    idx
  1   1    1  1 0     0  16
  2   1    1  1 0     1  16
  3   1    1  1 0     2  16

# === END OF DATA DESCRIPTION FILE ===============================
`

func TestImageRows_SkipsDefinitionSection(t *testing.T) {
	doc := Parse(tableHeader)

	rows := doc.ImageRows(10)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "16", rows[0][6])
	assert.Equal(t, "3", rows[2][0])
}

func TestImageRows_MaxCap(t *testing.T) {
	doc := Parse(tableHeader)

	rows := doc.ImageRows(2)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[1][0])
}

func TestImageRows_StopsAtNextBanner(t *testing.T) {
	header := strings.Replace(tableHeader,
		"  3   1    1  1 0     2  16",
		"# === TRAILER ===\n  3   1    1  1 0     2  16", 1)
	doc := Parse(header)

	rows := doc.ImageRows(10)
	require.Len(t, rows, 2)
}

func TestImageRows_NoTable(t *testing.T) {
	doc := Parse("# === DATA DESCRIPTION FILE ===\n.    Patient name : PP_0001\n")

	assert.Nil(t, doc.ImageRows(10))
}

func TestImageRows_IgnoresNonNumericLines(t *testing.T) {
	header := `# === IMAGE INFORMATION ==========================================
#  sl ec  dyn ph ty    idx
note: manual annotation
  1   1    1  1 0     0
`
	doc := Parse(header)

	rows := doc.ImageRows(10)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "1", "1", "1", "0", "0"}, rows[0])
}
