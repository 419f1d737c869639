package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type row struct {
	User string `json:"user" yaml:"user"`
	Site string `json:"site" yaml:"site"`
}

var testColumns = []Column{
	{Name: "User", Key: "User"},
	{Name: "Site", Key: "Site"},
}

func TestPlainPrintList(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("plain", &out, &errOut)

	err := f.PrintList([]row{{User: "alice", Site: "a.com"}, {User: "bob"}}, testColumns)
	require.NoError(t, err)
	assert.Equal(t, "User\tSite\nalice\ta.com\nbob\t\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPlainPrintListRequiresSlice(t *testing.T) {
	f := NewWithWriters("plain", &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, f.PrintList(row{}, testColumns))
}

func TestPlainPrintStruct(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("plain", &out, &bytes.Buffer{})

	require.NoError(t, f.Print(&row{User: "alice", Site: "a.com"}))
	assert.Equal(t, "User\talice\nSite\ta.com\n", out.String())
}

func TestPlainErrorAndHint(t *testing.T) {
	var errOut bytes.Buffer
	f := NewWithWriters("plain", &bytes.Buffer{}, &errOut)

	f.PrintError(errors.New("boom"))
	f.PrintHint("try again")
	assert.Equal(t, "error: boom\nhint: try again\n", errOut.String())
}

func TestJSONPrintListEnvelope(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("json", &out, &bytes.Buffer{})

	require.NoError(t, f.PrintList([]row{{User: "alice"}}, testColumns))

	var decoded struct {
		Data  []row `json:"data"`
		Count int   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Count)
	assert.Equal(t, "alice", decoded.Data[0].User)
}

func TestJSONHintIsSilent(t *testing.T) {
	var errOut bytes.Buffer
	f := NewWithWriters("json", &bytes.Buffer{}, &errOut)

	f.PrintHint("ignored")
	assert.Empty(t, errOut.String())
}

func TestYAMLPrintList(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("yaml", &out, &bytes.Buffer{})

	require.NoError(t, f.PrintList([]row{{User: "alice", Site: "a.com"}, {User: "bob"}}, testColumns))

	var decoded struct {
		Data  []row `yaml:"data"`
		Count int   `yaml:"count"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, []row{{User: "alice", Site: "a.com"}, {User: "bob"}}, decoded.Data)
}

func TestYAMLPrintError(t *testing.T) {
	var errOut bytes.Buffer
	f := NewWithWriters("yaml", &bytes.Buffer{}, &errOut)

	f.PrintError(errors.New("boom"))
	assert.Equal(t, "error: boom\n", errOut.String())
}

func TestUnknownModeFallsBackToPlain(t *testing.T) {
	assert.IsType(t, &plainFormatter{}, NewWithWriters("xml", &bytes.Buffer{}, &bytes.Buffer{}))
}
