package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbaydi/guide-for-china/internal/dsl"
	"github.com/maxbaydi/guide-for-china/internal/importer"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, importer.Stats{
		Entries:           1000,
		CharactersCreated: 900,
		CharactersExisted: 100,
		Definitions:       2500,
		Errors:            3,
		Elapsed:           2 * time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "entries read")
	assert.Contains(t, out, "2500")
	assert.Contains(t, out, "errors")
	assert.Contains(t, out, "entries/sec")
	assert.Contains(t, out, "500")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, importer.Report{Entries: 4, MissingPinyin: 2})

	assert.Contains(t, buf.String(), "missing pinyin")
}

func TestPrintMetadata_ExtraSorted(t *testing.T) {
	var buf bytes.Buffer
	printMetadata(&buf, dsl.Metadata{
		Name:  "BKRS",
		Extra: map[string]string{"SOURCE_CODE_PAGE": "Latin", "ICON_FILE": "x.bmp"},
	})

	out := buf.String()
	assert.Contains(t, out, "BKRS")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("ICON_FILE")), bytes.Index(buf.Bytes(), []byte("SOURCE_CODE_PAGE")))
}

func TestNewApp_Commands(t *testing.T) {
	a := newApp()

	var names []string
	for _, c := range a.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"import", "update-pinyin", "validate"}, names)
}

func TestImport_MissingFile(t *testing.T) {
	err := newApp().Run([]string{"dictimport", "validate"})
	assert.ErrorIs(t, err, errMissingFile)
}

func TestImport_UnknownMode(t *testing.T) {
	err := newApp().Run([]string{"dictimport", "import", "--mode", "sentences", "x.dsl"})
	assert.ErrorContains(t, err, "unknown mode")
}

func TestValidateCommand_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.dsl")
	src := "#NAME \"mini\"\n\n学\n\t[m1]учиться[/m]\n\n书\n\t[m1]книга[/m]\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	err := newApp().Run([]string{"dictimport", "validate", "--no-progress", path})
	assert.NoError(t, err)
}

func TestValidateCommand_FileNotFound(t *testing.T) {
	err := newApp().Run([]string{"dictimport", "validate", "--no-progress", filepath.Join(t.TempDir(), "absent.dsl")})
	assert.Error(t, err)
}

func TestImport_DryRunWithConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictimport.yaml")
	cfgYAML := "database:\n  dsn: \"postgres://u:p@localhost:5432/dict\"\nimport:\n  batch_size: 2\n  max_line_size: 4096\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	dictPath := filepath.Join(dir, "mini.dsl")
	src := "学\n\t[m1]учиться[/m]\n\n书\n\t[m1]книга[/m]\n\n好\n\t[m1]хороший[/m]\n"
	require.NoError(t, os.WriteFile(dictPath, []byte(src), 0o644))

	err := newApp().Run([]string{"dictimport", "--config", cfgPath, "import", "--dry-run", "--no-progress", dictPath})
	assert.NoError(t, err)
}

func TestImport_ConfigFlagFileNotFound(t *testing.T) {
	dictPath := filepath.Join(t.TempDir(), "mini.dsl")
	require.NoError(t, os.WriteFile(dictPath, []byte("学\n\t[m1]учиться[/m]\n"), 0o644))

	err := newApp().Run([]string{"dictimport", "--config", "/nonexistent/dictimport.yaml", "import", "--dry-run", dictPath})
	assert.ErrorContains(t, err, "load config")
}
