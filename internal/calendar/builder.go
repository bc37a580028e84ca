package calendar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"proctorcal/pkg/contracts/domain"
)

// MasterName is the calendar name given to the aggregate schedule.
const MasterName = "schedule"

// makeupExam marks rows for make-up sittings, which carry no course details.
const makeupExam = "Make-up Exam"

// uidNamespace seeds the version-5 UUIDs used as event UIDs. Deriving UIDs
// from event content keeps repeated runs on the same input byte-identical.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("proctorcal"))

// Options configures calendar building.
type Options struct {
	// ExpandLocation, when set, turns a location's building token into a
	// full building name for the event description.
	ExpandLocation func(string) string
}

// Build converts assignments into the master calendar and one calendar per
// proctor. Events are ordered by start time ascending, ties broken by proctor
// name and then by exam name. Duplicate assignments produce duplicate events.
func Build(assignments []domain.Assignment, opts Options) (domain.Calendar, map[string]domain.Calendar) {
	type entry struct {
		proctor string
		event   domain.Event
	}

	entries := make([]entry, 0, len(assignments))
	seen := make(map[string]int)
	for _, a := range assignments {
		key := fmt.Sprintf("%s|%s|%s|%s", a.Start.Format("20060102T150405"), a.End.Format("20060102T150405"), a.Proctor, a.Exam)
		seq := seen[key]
		seen[key] = seq + 1

		entries = append(entries, entry{
			proctor: a.Proctor,
			event: domain.Event{
				UID:         uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%s|%d", key, seq))).String(),
				Title:       a.Exam,
				Start:       a.Start,
				End:         a.End,
				Location:    a.Location,
				Description: description(a, opts.ExpandLocation),
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].event.Start.Equal(entries[j].event.Start) {
			return entries[i].event.Start.Before(entries[j].event.Start)
		}
		if entries[i].proctor != entries[j].proctor {
			return entries[i].proctor < entries[j].proctor
		}
		return entries[i].event.Title < entries[j].event.Title
	})

	master := domain.Calendar{Name: MasterName, Events: make([]domain.Event, 0, len(entries))}
	perProctor := make(map[string]domain.Calendar)
	for _, e := range entries {
		master.Events = append(master.Events, e.event)
		cal, ok := perProctor[e.proctor]
		if !ok {
			cal = domain.Calendar{Name: e.proctor}
		}
		cal.Events = append(cal.Events, e.event)
		perProctor[e.proctor] = cal
	}

	return master, perProctor
}

// description renders the event body the way the exported calendars present
// it: course details, the full proctor list for the slot, and the building.
func description(a domain.Assignment, expand func(string) string) string {
	var lines []string

	if a.Exam == makeupExam {
		lines = append(lines, "Make-up exam")
	} else if a.Course != "" {
		detail := fmt.Sprintf("%s %s", a.Exam, a.Course)
		if a.Section != "" {
			detail += "-" + a.Section
		}
		if a.Instructor != "" {
			detail += " for " + a.Instructor
		}
		if a.Enrolled != "" {
			detail += ", " + a.Enrolled + " students"
		}
		lines = append(lines, detail)
	}

	lines = append(lines, "Proctors: "+strings.Join(a.Proctors, ", "))

	if a.Exam != makeupExam && a.Location != "" {
		building := strings.TrimSpace(strings.SplitN(a.Location, "-", 2)[0])
		if expand != nil {
			building = expand(a.Location)
		}
		lines = append(lines, "Building: "+building)
	}

	return strings.Join(lines, "\n")
}
