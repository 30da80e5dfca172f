package helpers

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// GeneralAttendee marks a check-in link not tied to a single attendee.
const GeneralAttendee = "general"

// CheckinLink carries everything a scanned check-in code needs:
// <origin>/event-checkin?event=<id>&attendee=<id|"general">&title=<t>&start=<ISO>&end=<ISO>
type CheckinLink struct {
	Origin   string
	EventID  string
	Attendee string
	Title    string
	Start    time.Time
	End      time.Time
}

func (l CheckinLink) String() string {
	attendee := l.Attendee
	if attendee == "" {
		attendee = GeneralAttendee
	}

	params := url.Values{}
	params.Set("event", l.EventID)
	params.Set("attendee", attendee)
	params.Set("title", l.Title)
	params.Set("start", l.Start.UTC().Format(time.RFC3339))
	params.Set("end", l.End.UTC().Format(time.RFC3339))

	return fmt.Sprintf("%s/event-checkin?%s", strings.TrimRight(l.Origin, "/"), params.Encode())
}

// ParseCheckinLink reads a scanned link back into its parts.
func ParseCheckinLink(raw string) (*CheckinLink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in link: %v", err)
	}
	if !strings.HasSuffix(u.Path, "/event-checkin") {
		return nil, fmt.Errorf("not a check-in link: %s", u.Path)
	}

	q := u.Query()
	link := &CheckinLink{
		Origin:   u.Scheme + "://" + u.Host,
		EventID:  q.Get("event"),
		Attendee: q.Get("attendee"),
		Title:    q.Get("title"),
	}

	if link.EventID == "" {
		return nil, fmt.Errorf("check-in link is missing the event id")
	}
	if link.Attendee == "" {
		link.Attendee = GeneralAttendee
	}

	if s := q.Get("start"); s != "" {
		start, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid start time in check-in link: %v", err)
		}
		link.Start = start
	}
	if e := q.Get("end"); e != "" {
		end, err := time.Parse(time.RFC3339, e)
		if err != nil {
			return nil, fmt.Errorf("invalid end time in check-in link: %v", err)
		}
		link.End = end
	}

	return link, nil
}
