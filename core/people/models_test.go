package people

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(students []Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	students := []Student{
		{ID: 1, Name: "Ana Souza"},
		{ID: 2, Name: "Bruno Lima"},
		{ID: 3, Name: "Carla Dias"},
		{ID: 4, Name: "Mariana Lima"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "blank query", query: "  ", want: []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Mariana Lima"}},
		{name: "substring, any case", query: "LIMA", want: []string{"Bruno Lima", "Mariana Lima"}},
		{name: "substrings rank first", query: "ana", want: []string{"Ana Souza", "Mariana Lima"}},
		{name: "typo", query: "brno", want: []string{"Bruno Lima"}},
		{name: "no match", query: "zzzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Search(students, tt.query)))
		})
	}
}
