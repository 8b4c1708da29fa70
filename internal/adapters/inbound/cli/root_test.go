package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/openkraft/csvcheck/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "csvcheck")
}

func TestValidatorsCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validators"})
	require.NoError(t, cmd.Execute())

	var desc []struct {
		Name    string   `json:"name"`
		Title   string   `json:"title"`
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &desc))
	require.Len(t, desc, 3)
	assert.Equal(t, "culture", desc[0].Name)
	assert.Len(t, desc[0].Sources, 5)
	assert.Equal(t, "digital_object_path", desc[2].Name)
	assert.Equal(t, []string{"informationObject"}, desc[2].Sources)
}

func TestHistoryCommand_Empty(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history", "--path", t.TempDir()})
	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, "[]", buf.String())
}
