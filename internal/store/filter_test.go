package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		expr     string
		expected Filter
		wantErr  bool
	}{
		{expr: "", expected: Filter{}},
		{expr: "tag/work", expected: Tag("work")},
		{expr: "site/example.com/login", expected: Site("example.com/login")},
		{expr: "tag/", expected: Tag("")},
		{expr: "bogus", wantErr: true},
		{expr: "user/alice", wantErr: true},
		{expr: "TAG/work", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := ParseFilter(tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnexpectedFilterSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}
