package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain term untouched", input: "cafeteria", want: "cafeteria"},
		{name: "percent escaped", input: "50%", want: `50\%`},
		{name: "underscore escaped", input: "TR_1001", want: `TR\_1001`},
		{name: "backslash escaped", input: `a\b`, want: `a\\b`},
		{name: "mixed", input: `100%_\`, want: `100\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likeEscaper.Replace(tt.input))
		})
	}
}
