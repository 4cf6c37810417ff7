package people

import (
	"context"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

// minSearchRatio is the similarity under which a student is not a search hit.
const minSearchRatio = 0.6

type Student struct {
	ID        int         `json:"id" validate:"gt=0"`
	Name      string      `json:"nome" validate:"required"`
	CPF       null.String `json:"cpf"`
	BirthDate string      `json:"data_nascimento"`
}

// Repository is the backend's people area.
type Repository interface {
	ListStudents(ctx context.Context) ([]Student, error)
}

type match struct {
	student Student
	ratio   float64
}

// Search ranks students by how closely their name matches query.
// Substring hits always match; other names match on difflib similarity.
func Search(students []Student, query string) []Student {
	query = core.CleanString(query, true)
	if query == "" {
		return students
	}

	var matches []match
	for _, s := range students {
		name := core.CleanString(s.Name, true)
		if strings.Contains(name, query) {
			matches = append(matches, match{student: s, ratio: 2})
			continue
		}
		ratio := bestRatio(strings.Fields(name), query)
		if ratio >= minSearchRatio {
			matches = append(matches, match{student: s, ratio: ratio})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })
	found := make([]Student, 0, len(matches))
	for _, m := range matches {
		found = append(found, m.student)
	}
	return found
}

// bestRatio compares query with every word of a name and returns the best similarity.
func bestRatio(words []string, query string) float64 {
	var best float64
	q := strings.Split(query, "")
	for _, w := range words {
		sm := difflib.NewMatcher(strings.Split(w, ""), q)
		if r := sm.Ratio(); r > best {
			best = r
		}
	}
	return best
}
