package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyhub/internal/modules/xp/domain"
)

func TestLevelDerivation(t *testing.T) {
	t.Parallel()
	cases := map[int]int{0: 1, 99: 1, 100: 2, 250: 3, 1000: 11}
	for xp, want := range cases {
		assert.Equal(t, want, domain.Level(xp), "level for %d xp", xp)
	}
	assert.Equal(t, 50, domain.Progress(250))
}

func TestBadgesArePurePredicates(t *testing.T) {
	t.Parallel()
	assert.Empty(t, domain.Badges(0, 0))

	ids := func(badges []domain.Badge) []string {
		out := make([]string, 0, len(badges))
		for _, b := range badges {
			out = append(out, b.ID)
		}
		return out
	}
	assert.Equal(t, []string{"first-session", "rising-star"}, ids(domain.Badges(120, 1)))
	assert.Equal(t, []string{"first-session", "dedicated", "marathoner", "rising-star", "scholar", "master"}, ids(domain.Badges(1000, 50)))
	assert.Len(t, domain.Catalog(), 6)
}
