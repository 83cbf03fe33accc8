package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tracon/scopecmd/internal/scoperr"
)

func Test_Tokenize(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "blank string",
			input:  "",
			expect: []string{""},
		},
		{
			name:   "single word",
			input:  "PAUSE",
			expect: []string{"pause"},
		},
		{
			name:   "arguments are lower-cased too",
			input:  "AA777 DCT KEPEC",
			expect: []string{"aa777", "dct", "kepec"},
		},
		{
			name:   "double space gives an empty token",
			input:  "AA777  fh 030",
			expect: []string{"aa777", "", "fh", "030"},
		},
		{
			name:   "trailing space gives an empty token",
			input:  "pause ",
			expect: []string{"pause", ""},
		},
		{
			name:   "tabs are not separators",
			input:  "aa777\tfh",
			expect: []string{"aa777\tfh"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Tokenize(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_TokenizeInput(t *testing.T) {
	testCases := []struct {
		name      string
		input     any
		expect    []string
		expectErr bool
	}{
		{
			name:   "string",
			input:  "timewarp 50",
			expect: []string{"timewarp", "50"},
		},
		{
			name:      "number",
			input:     50,
			expectErr: true,
		},
		{
			name:      "nil",
			input:     nil,
			expectErr: true,
		},
		{
			name:      "byte slice",
			input:     []byte("pause"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := TokenizeInput(tc.input)
			if tc.expectErr {
				assert.ErrorIs(err, scoperr.ErrInputType)
				assert.Nil(actual)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_InputTypeError_namesType(t *testing.T) {
	_, err := TokenizeInput(3.5)

	var typeErr *scoperr.InputTypeError
	if assert.True(t, errors.As(err, &typeErr)) {
		assert.Equal(t, "float64", typeErr.Got)
	}
}
