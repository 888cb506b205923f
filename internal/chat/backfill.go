package chat

import "github.com/saravenpi/outreach/internal/models"

// DefaultThreshold is the share of the sentinel that must be on screen before
// an older page is requested.
const DefaultThreshold = 0.5

// SentinelVisible reports whether a sentinel occupying the first height lines
// of the content is at least threshold visible when the viewport is scrolled
// down by yOffset lines.
func SentinelVisible(yOffset, height int, threshold float64) bool {
	if height <= 0 {
		return false
	}
	if yOffset < 0 {
		yOffset = 0
	}
	visible := height - yOffset
	if visible <= 0 {
		return false
	}
	return float64(visible)/float64(height) >= threshold
}

// Backfill loads older pages when the user reaches the oldest loaded message.
// At most one page is in flight, and pages are requested in cursor order.
type Backfill struct {
	Threshold float64

	fetching    bool
	page        int
	savedOffset int
}

func NewBackfill() *Backfill {
	return &Backfill{Threshold: DefaultThreshold}
}

// Fetching is true while a page request is outstanding. Scroll input is
// ignored meanwhile.
func (b *Backfill) Fetching() bool {
	return b.fetching
}

// Trigger starts a fetch when the sentinel is visible, more messages exist on
// the server and nothing is in flight. It remembers scrollOffset and returns
// the page to request.
func (b *Backfill) Trigger(visible bool, s *Store, scrollOffset int) (int, bool) {
	if !visible || b.fetching || s.Len() == 0 || !s.HasMore() {
		return 0, false
	}
	b.fetching = true
	b.page = s.Offset()
	b.savedOffset = scrollOffset
	return b.page, true
}

// Complete applies the response for page. A response for any other page is
// dropped. An empty page ends pagination so a miscounted total cannot loop.
func (b *Backfill) Complete(s *Store, page int, older []models.Message, total int) bool {
	if !b.fetching || page != b.page {
		return false
	}
	b.fetching = false

	s.AppendOlderPage(older)
	if total > 0 {
		s.SetTotalCount(total)
	}
	if len(older) == 0 {
		s.SetTotalCount(s.Len())
	}
	return true
}

// Fail ends the in-flight request without moving the cursor.
func (b *Backfill) Fail(page int) {
	if b.fetching && page == b.page {
		b.fetching = false
	}
}

// Restore returns the scroll offset that keeps the same lines on screen after
// inserted lines were added above them.
func (b *Backfill) Restore(inserted int) int {
	if inserted < 0 {
		inserted = 0
	}
	return b.savedOffset + inserted
}
