package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callValidate(t *testing.T, dir string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Name = "csvcheck_validate"
	req.Params.Arguments = args

	res, err := handleValidate(dir)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func textOf(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestHandleValidate_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objects", "a.jpg"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import.csv"),
		[]byte("culture,language,digitalObjectPath\nen,en,a.jpg\n"), 0644))

	res := callValidate(t, dir, map[string]any{
		"files":           "import.csv",
		"digital_objects": "objects",
	})
	require.False(t, res.IsError, textOf(t, res))

	var out struct {
		Status string         `json:"status"`
		Counts map[string]int `json:"counts"`
		Report struct {
			Files []struct {
				Filename string `json:"filename"`
				Results  []struct {
					Title  string `json:"title"`
					Status string `json:"status"`
				} `json:"results"`
			} `json:"files"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))

	assert.Equal(t, "pass", out.Status)
	assert.Equal(t, 3, out.Counts["pass"])
	require.Len(t, out.Report.Files, 1)
	assert.Equal(t, filepath.Join(dir, "import.csv"), out.Report.Files[0].Filename)
	assert.Len(t, out.Report.Files[0].Results, 3)
}

func TestHandleValidate_MissingFilesArgument(t *testing.T) {
	res := callValidate(t, t.TempDir(), map[string]any{})
	assert.True(t, res.IsError)
}

func TestHandleValidate_BlankFileList(t *testing.T) {
	res := callValidate(t, t.TempDir(), map[string]any{"files": " , "})
	assert.True(t, res.IsError)
	assert.Equal(t, "no CSV files given", textOf(t, res))
}

func TestHandleValidate_InvalidSource(t *testing.T) {
	res := callValidate(t, t.TempDir(), map[string]any{"files": "a.csv", "source": "person"})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "unknown source")
}

func TestHandleValidate_UnreadableFile(t *testing.T) {
	res := callValidate(t, t.TempDir(), map[string]any{"files": "missing.csv"})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "validate failed")
}

func TestHandleValidatorsResource(t *testing.T) {
	contents, err := handleValidatorsResource(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, validatorsURI, text.URI)
	assert.Contains(t, text.Text, `"digital_object_path"`)
	assert.Contains(t, text.Text, `"Culture Check"`)
}

func TestHandleValidate_ConfigFolderRelativeToDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".csvcheck.yaml"), []byte("digital_objects: objects\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objects", "a.jpg"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objects", "b.jpg"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.csv"), []byte("digitalObjectPath\na.jpg\n"), 0644))
	t.Chdir(t.TempDir())

	res := callValidate(t, dir, map[string]any{"files": "in.csv"})
	require.False(t, res.IsError, textOf(t, res))

	text := textOf(t, res)
	assert.NotContains(t, text, "Unable to open digital object folder path")
	assert.Contains(t, text, "Unreferenced digital object: b.jpg")
	assert.Contains(t, text, `"status": "warn"`)
}
