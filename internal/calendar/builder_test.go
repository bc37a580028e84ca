package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proctorcal/pkg/contracts/domain"
)

func assignment(exam, proctor string, start, end time.Time) domain.Assignment {
	return domain.Assignment{
		Exam:     exam,
		Proctor:  proctor,
		Date:     start.Truncate(24 * time.Hour),
		Start:    start,
		End:      end,
		Location: "PAB-148",
		Proctors: []string{proctor},
	}
}

func TestBuildOrdersEvents(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	early := day.Add(9 * time.Hour)
	late := day.Add(14 * time.Hour)

	master, _ := Build([]domain.Assignment{
		assignment("CALC", "Bob Lee", late, late.Add(2*time.Hour)),
		assignment("BIO", "Bob Lee", early, early.Add(2*time.Hour)),
		// Same start as the BIO slot: ties break on proctor, then exam.
		assignment("CHEM", "Alice Jones", early, early.Add(2*time.Hour)),
		assignment("ALG", "Alice Jones", early, early.Add(2*time.Hour)),
	}, Options{})

	require.Len(t, master.Events, 4)
	titles := make([]string, len(master.Events))
	for i, e := range master.Events {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"ALG", "CHEM", "BIO", "CALC"}, titles)

	for i := 1; i < len(master.Events); i++ {
		assert.False(t, master.Events[i].Start.Before(master.Events[i-1].Start))
	}
}

func TestBuildSplitsPerProctor(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	as := []domain.Assignment{
		assignment("CALC", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour)),
		assignment("BIO", "Bob Lee", day.Add(13*time.Hour), day.Add(15*time.Hour)),
		assignment("CHEM", "Alice Jones", day.Add(16*time.Hour), day.Add(18*time.Hour)),
	}

	master, perProctor := Build(as, Options{})

	require.Len(t, perProctor, 2)
	assert.Len(t, perProctor["Alice Jones"].Events, 2)
	assert.Len(t, perProctor["Bob Lee"].Events, 1)
	assert.Equal(t, "Alice Jones", perProctor["Alice Jones"].Name)

	// No event is lost or duplicated across the split.
	seen := make(map[string]int)
	for _, cal := range perProctor {
		for _, e := range cal.Events {
			seen[e.UID]++
		}
	}
	assert.Len(t, seen, len(master.Events))
	for _, e := range master.Events {
		assert.Equal(t, 1, seen[e.UID], "event %s must appear in exactly one proctor calendar", e.Title)
	}
}

func TestBuildKeepsDuplicateAssignments(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	a := assignment("CALC", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour))

	master, perProctor := Build([]domain.Assignment{a, a}, Options{})

	require.Len(t, master.Events, 2)
	assert.Len(t, perProctor["Alice Jones"].Events, 2)
	// Duplicates stay distinct events.
	assert.NotEqual(t, master.Events[0].UID, master.Events[1].UID)
}

func TestBuildIsDeterministic(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	as := []domain.Assignment{
		assignment("CALC", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour)),
		assignment("BIO", "Bob Lee", day.Add(13*time.Hour), day.Add(15*time.Hour)),
	}

	m1, p1 := Build(as, Options{})
	m2, p2 := Build(as, Options{})

	assert.Equal(t, m1, m2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, string(EncodeICS(m1)), string(EncodeICS(m2)))
}

func TestDescription(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("course details", func(t *testing.T) {
		a := assignment("CALC", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour))
		a.Course = "1000"
		a.Section = "001"
		a.Instructor = "Dr. Smith"
		a.Enrolled = "120"
		a.Proctors = []string{"Alice Jones", "Bob Lee"}

		got := description(a, nil)
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "CALC 1000-001 for Dr. Smith, 120 students", lines[0])
		assert.Equal(t, "Proctors: Alice Jones, Bob Lee", lines[1])
		assert.Equal(t, "Building: PAB", lines[2])
	})

	t.Run("make-up exam", func(t *testing.T) {
		a := assignment("Make-up Exam", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour))
		a.Course = "1000"

		got := description(a, nil)
		assert.Equal(t, "Make-up exam\nProctors: Alice Jones", got)
	})

	t.Run("expander wired", func(t *testing.T) {
		a := assignment("CALC", "Alice Jones", day.Add(9*time.Hour), day.Add(11*time.Hour))

		got := description(a, func(location string) string {
			assert.Equal(t, "PAB-148", location)
			return "Physics and Astronomy Building"
		})
		assert.Contains(t, got, "Building: Physics and Astronomy Building")
	})
}
