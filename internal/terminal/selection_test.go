package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		want    []int
		wantErr error
	}{
		{name: "single", answer: "2", want: []int{2}},
		{name: "spaces and repeats", answer: " 3, 1 ,3", want: []int{3, 1}},
		{name: "blank entries", answer: "1,,2,", want: []int{1, 2}},
		{name: "empty", answer: "", want: nil},
		{name: "not a number", answer: "1, two", wantErr: ErrSelectionFormat},
		{name: "zero", answer: "0", wantErr: ErrSelectionRange},
		{name: "too large", answer: "1, 4", wantErr: ErrSelectionRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.answer, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsole_SelectMany(t *testing.T) {
	c, out := scripted("5\nx\n2, 1\n")

	indexes, err := c.SelectMany("Pick: ", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, indexes)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input:"))
	assert.Contains(t, out.String(), "between 1 and 3")
}
