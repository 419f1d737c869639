package transfer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/fa/internal/provider/providertest"
	"github.com/semmy-space/fa/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	path := store.Resolve("main", t.TempDir())
	st, err := store.Create(context.Background(), providertest.New(), "main", path, "ABCDEF")
	require.NoError(t, err)
	return st
}

const browserExport = `name,url,username,password
Example,https://example.com,alice,pw1
Other,https://other.org,bob,pw2
NoSite,,carol,pw3
`

func TestImport(t *testing.T) {
	st := newStore(t)

	res, err := Import(st, strings.NewReader(browserExport))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 3, Skipped: 0}, res)

	assert.Equal(t, []store.Credential{
		{User: "alice", Password: "pw1", Site: "https://example.com"},
		{User: "bob", Password: "pw2", Site: "https://other.org"},
		{User: "carol", Password: "pw3"},
	}, st.Credentials())
}

func TestImportTwiceIsIdempotent(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := Import(st, strings.NewReader(browserExport))
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx))
	count := st.Len()

	res, err := Import(st, strings.NewReader(browserExport))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, count, st.Len())
}

func TestImportSkipsExistingAndInFileDuplicates(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.Add(store.Credential{User: "alice", Password: "pw1", Tag: "mine"}))

	input := "username,password,url\nalice,pw1,https://example.com\ndave,pw4,\ndave,pw4,https://dup.example\n"
	res, err := Import(st, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 1, Skipped: 2}, res)

	creds := st.Credentials()
	require.Len(t, creds, 2)
	assert.Equal(t, "mine", creds[0].Tag, "existing entry untouched")
	assert.Equal(t, store.Credential{User: "dave", Password: "pw4"}, creds[1])
}

func TestImportHeaderHandling(t *testing.T) {
	st := newStore(t)

	input := "\ufeff Username , PASSWORD\nerin,pw5\n"
	res, err := Import(st, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, []store.Credential{{User: "erin", Password: "pw5"}}, st.Credentials())
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "empty file", input: "", err: ErrMissingColumn},
		{name: "no password column", input: "username,url\nalice,x\n", err: ErrMissingColumn},
		{name: "no username column", input: "password\npw\n", err: ErrMissingColumn},
		{name: "empty password", input: "username,password\nalice,\n", err: ErrInvalidRow},
		{name: "short row", input: "url,username,password\nhttps://x\n", err: ErrInvalidRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t)
			_, err := Import(st, strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReadRejectsWholeFile(t *testing.T) {
	input := "username,password\nalice,pw1\nbob,\n"
	_, err := Read(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrInvalidRow)

	// A bad row leaves the store as it was
	st := newStore(t)
	_, err = Import(st, strings.NewReader(input))
	require.Error(t, err)
	assert.Equal(t, 0, st.Len())
	assert.False(t, st.Dirty())
}

func TestReadThenMerge(t *testing.T) {
	creds, err := Read(strings.NewReader(browserExport))
	require.NoError(t, err)
	require.Len(t, creds, 3)

	st := newStore(t)
	require.NoError(t, st.Add(store.Credential{User: "bob", Password: "pw2"}))

	res, err := Merge(st, creds)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2, Skipped: 1}, res)
	assert.Equal(t, 3, st.Len())
}

func TestExport(t *testing.T) {
	st := newStore(t)
	for _, c := range []store.Credential{
		{User: "alice", Password: "pw1", Tag: "work", Site: "https://example.com"},
		{User: "bob", Password: "pa,ss\"word"},
	} {
		require.NoError(t, st.Add(c))
	}

	var buf bytes.Buffer
	n, err := Export(st, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := "username,password,url\n" +
		"alice,pw1,https://example.com\n" +
		"bob,\"pa,ss\"\"word\",\n"
	assert.Equal(t, expected, buf.String())
	assert.NotContains(t, buf.String(), "work", "tags are not exported")
}

func TestExportEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	n, err := Export(newStore(t), &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "username,password,url\n", buf.String())
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newStore(t)
	require.NoError(t, src.Add(store.Credential{User: "a", Password: "1", Site: "s"}))
	require.NoError(t, src.Add(store.Credential{User: "b", Password: "2"}))

	var buf bytes.Buffer
	_, err := Export(src, &buf)
	require.NoError(t, err)

	dst := newStore(t)
	res, err := Import(dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, src.Credentials(), dst.Credentials())
}
