package chat

import "time"

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar dates in t's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayLabel is the separator shown above the first message of each day.
func DayLabel(t, now time.Time) string {
	t = t.In(now.Location())
	diff := startOfDay(now).Sub(t)
	switch {
	case diff <= 0:
		return "Today"
	case diff < 24*time.Hour:
		return "Yesterday"
	default:
		return t.Format("2/1/2006")
	}
}

// ListLabel is the timestamp shown next to a conversation in the sidebar:
// clock time for today, "Yesterday", otherwise the date.
func ListLabel(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	diff := startOfDay(now).Sub(t)
	switch {
	case diff <= 0:
		return t.Format("3:04 PM")
	case diff < 24*time.Hour:
		return "Yesterday"
	default:
		return t.Format("2/1/2006")
	}
}
