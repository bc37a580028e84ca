package calendar

import (
	ics "github.com/arran4/golang-ical"

	"proctorcal/pkg/contracts/domain"
)

// EncodeICS serializes a calendar to iCalendar bytes. DTSTAMP is pinned to
// each event's start so output for a given input is reproducible.
func EncodeICS(cal domain.Calendar) []byte {
	c := ics.NewCalendar()
	c.SetMethod(ics.MethodPublish)
	c.SetProductId("-//proctorcal//proctoring schedule//EN")
	c.SetXWRCalName(cal.Name)

	for _, e := range cal.Events {
		ev := c.AddEvent(e.UID)
		ev.SetDtStampTime(e.Start)
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End)
		ev.SetSummary(e.Title)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
	}

	return []byte(c.Serialize())
}
