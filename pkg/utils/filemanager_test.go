package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "input_archive"),
		filepath.Join(root, "output_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)
	touch(t, filepath.Join(fm.InputDir, "b.xlsx"))
	touch(t, filepath.Join(fm.InputDir, "a.CSV"))
	touch(t, filepath.Join(fm.InputDir, "~$b.xlsx"))
	touch(t, filepath.Join(fm.InputDir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "sub.xlsx"), 0o755))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a.CSV"),
		filepath.Join(fm.InputDir, "b.xlsx"),
	}, files)
}

func TestArchiveInputFile_Moves(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.InputDir, "faltas.xlsx")
	touch(t, src)

	dst, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "faltas.xlsx"), dst)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestArchiveOutputFile_Copies(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.OutputDir, "Trello.xlsx")
	touch(t, src)

	dst, err := fm.ArchiveOutputFile(src)
	require.NoError(t, err)
	assert.FileExists(t, src)
	assert.FileExists(t, dst)
}

func TestArchive_Disabled(t *testing.T) {
	fm := newTestManager(t)
	fm.ArchiveOnSuccess = false
	src := filepath.Join(fm.InputDir, "faltas.xlsx")
	touch(t, src)

	dst, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
	assert.FileExists(t, src)
}

func TestGenerateOutputFileName(t *testing.T) {
	at := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	assert.Equal(t, "Trello_Formatado_20240115_143022.xlsx",
		GenerateOutputFileName("Trello_Formatado_{timestamp}.xlsx", at, nil))
	assert.Equal(t, "faltas_20240115_143022.xlsx",
		GenerateOutputFileName("{original}_{date}_{time}", at, map[string]string{"original": "faltas"}))

	name := GenerateOutputFileName("{uuid}.xlsx", at, nil)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.xlsx$`), name)
}

func TestReservePath(t *testing.T) {
	dir := t.TempDir()

	first, err := ReservePath(dir, "Trello.xlsx")
	require.NoError(t, err)
	second, err := ReservePath(dir, "Trello.xlsx")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Trello.xlsx"), first)
	assert.Equal(t, filepath.Join(dir, "Trello_2.xlsx"), second)
	assert.FileExists(t, second)
}

func TestOriginalName(t *testing.T) {
	assert.Equal(t, "faltas_janeiro", OriginalName("/tmp/in/faltas_janeiro.xlsx"))
}

func TestWriteErrorLog(t *testing.T) {
	fm := newTestManager(t)

	path, err := WriteErrorLog(nil, fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteErrorLog([]ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "faltas.xlsx",
		ErrorType:    "row",
		ErrorMessage: "invalid UTF-8",
		RowNumber:    4,
		EmployeeName: "Ana",
	}}, fm.OutputDir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Errors: 1")
	assert.Contains(t, string(data), "Row Number:     4")
	assert.Contains(t, string(data), "Employee:       Ana")
}

func TestFormatSummary(t *testing.T) {
	start := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, FormatSummary(&buf, ProcessingSummary{
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalRecords:    2,
		ProcessedFiles: []ProcessedFileInfo{{
			InputFile:  "faltas.xlsx",
			Records:    2,
			Categories: []string{"ATRASO", "SEM BATIDA"},
		}},
		FailedFilesList: []FailedFileInfo{{InputFile: "bad.xlsx", ErrorType: "schema", ErrorMessage: "missing required fields: LATE"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Duration:       2s")
	assert.Contains(t, out, "Categories:   ATRASO, SEM BATIDA")
	assert.Contains(t, out, "missing required fields: LATE")
}
