package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectCommandReader_ReadCommand(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		allowBlank bool
		expect     []string
	}{
		{
			name:   "lines",
			input:  "pause\naa777 fh 030\n",
			expect: []string{"pause", "aa777 fh 030"},
		},
		{
			name:   "skips blank lines",
			input:  "\n   \npause\n",
			expect: []string{"pause"},
		},
		{
			name:       "blank lines allowed",
			input:      "\npause\n",
			allowBlank: true,
			expect:     []string{"", "pause"},
		},
		{
			name:   "last line without newline",
			input:  "pause\ntimewarp 5",
			expect: []string{"pause", "timewarp 5"},
		},
		{
			name:   "outer space trimmed, inner space kept",
			input:  "  aa777  fh 030 \r\n",
			expect: []string{"aa777  fh 030"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewDirectReader(strings.NewReader(tc.input))
			r.AllowBlank(tc.allowBlank)

			var actual []string
			for {
				line, err := r.ReadCommand()
				if err == io.EOF {
					assert.Equal("", line)
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
			assert.NoError(r.Close())
		})
	}
}
