package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

func commitment(t *testing.T, title string) *domain.Commitment {
	t.Helper()
	c, err := domain.NewCommitment(title, 30*time.Minute, domain.CategoryPersonal)
	require.NoError(t, err)
	return c
}

func titles(cs []*domain.Commitment) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title()
	}
	return out
}

func TestResolver_Filter_TitleTiers(t *testing.T) {
	resolver := domain.NewResolver()
	pool := []*domain.Commitment{
		commitment(t, "Morning jog"),
		commitment(t, "جري صباحي"),
		commitment(t, "Grocery shopping"),
		commitment(t, "Team meeting"),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "substring exact case-insensitive",
			query: "morning jog",
			want:  []string{"Morning jog"},
		},
		{
			name:  "arabic substring",
			query: "جري",
			want:  []string{"جري صباحي"},
		},
		{
			name:  "token superstring",
			query: "groceries",
			want:  []string{"Grocery shopping"},
		},
		{
			name:  "synonym crosses languages",
			query: "run",
			want:  []string{"Morning jog", "جري صباحي"},
		},
		{
			name:  "stop words ignored",
			query: "go for a jog",
			want:  []string{"Morning jog", "جري صباحي"},
		},
		{
			name:  "synonym meeting",
			query: "اجتماع",
			want:  []string{"Team meeting"},
		},
		{
			name:  "no match",
			query: "dentist",
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Filter(domain.TaskQuery{TitleContains: tt.query}, pool)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestResolver_Filter_PreservesInputOrder(t *testing.T) {
	resolver := domain.NewResolver()
	pool := []*domain.Commitment{
		commitment(t, "run errands"),
		commitment(t, "evening run"),
		commitment(t, "morning run"),
	}

	got := resolver.Filter(domain.TaskQuery{TitleContains: "run"}, pool)
	assert.Equal(t, []string{"run errands", "evening run", "morning run"}, titles(got))

	// Same input, same result: resolution is deterministic.
	again := resolver.Filter(domain.TaskQuery{TitleContains: "run"}, pool)
	assert.Equal(t, titles(got), titles(again))
}

func TestResolver_Filter_ExactFields(t *testing.T) {
	resolver := domain.NewResolver()
	done := commitment(t, "write report")
	done.MarkCompleted()
	work := commitment(t, "review code")
	work.SetCategory(domain.CategoryWork)
	pool := []*domain.Commitment{done, work, commitment(t, "water plants")}

	completed := true
	got := resolver.Filter(domain.TaskQuery{Completed: &completed}, pool)
	assert.Equal(t, []string{"write report"}, titles(got))

	cat := domain.CategoryWork
	got = resolver.Filter(domain.TaskQuery{Category: &cat}, pool)
	assert.Equal(t, []string{"review code"}, titles(got))
}

func TestResolver_Filter_DateFilter(t *testing.T) {
	resolver := domain.NewResolver()
	today := scheduled(t, "dentist", 30*time.Minute, at(10, 0))
	tomorrow := scheduled(t, "barber", 30*time.Minute, at(10, 0).AddDate(0, 0, 1))
	pool := []*domain.Commitment{today, tomorrow}

	d := day
	got := resolver.Filter(domain.TaskQuery{Date: &d}, pool)
	assert.Equal(t, []string{"dentist"}, titles(got))
}

func TestResolver_ResolveOne(t *testing.T) {
	resolver := domain.NewResolver()
	pool := []*domain.Commitment{
		commitment(t, "Morning jog"),
		commitment(t, "Team meeting"),
	}

	c, err := resolver.ResolveOne(domain.TaskQuery{TitleContains: "meeting"}, pool)
	require.NoError(t, err)
	assert.Equal(t, "Team meeting", c.Title())
}

func TestResolver_ResolveOne_NotFound(t *testing.T) {
	resolver := domain.NewResolver()
	_, err := resolver.ResolveOne(domain.TaskQuery{TitleContains: "dentist"}, []*domain.Commitment{
		commitment(t, "Morning jog"),
	})
	assert.ErrorIs(t, err, domain.ErrCommitmentNotFound)
}

func TestResolver_ResolveOne_Ambiguous(t *testing.T) {
	resolver := domain.NewResolver()
	pool := []*domain.Commitment{
		commitment(t, "Morning jog"),
		commitment(t, "Evening run"),
	}

	_, err := resolver.ResolveOne(domain.TaskQuery{TitleContains: "run"}, pool)

	var ambiguous *domain.AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "run", ambiguous.Query)
	assert.Len(t, ambiguous.Candidates, 2)
}
