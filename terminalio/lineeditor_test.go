package terminalio

import "testing"

func TestInsertAtMiddle(t *testing.T) {
	got := insertAt([]rune("helloworld"), 5, ' ')
	if string(got) != "hello world" {
		t.Errorf("got %q", string(got))
	}
}

func TestHistoryUpDown(t *testing.T) {
	h := &History{entries: []string{"p1", "p2", "p3"}}

	idx, buf, cursor := historyUp(h, 3, []rune("in-progress"))
	if idx != 2 || string(buf) != "p3" || cursor != 2 {
		t.Errorf("got idx=%d buf=%q cursor=%d", idx, string(buf), cursor)
	}

	idx, buf, _ = historyUp(h, idx, buf)
	if idx != 1 || string(buf) != "p2" {
		t.Errorf("got idx=%d buf=%q", idx, string(buf))
	}

	idx, buf, _ = historyDown(h, idx, buf)
	if idx != 2 || string(buf) != "p3" {
		t.Errorf("got idx=%d buf=%q", idx, string(buf))
	}
}

func TestSearchHistoryFindsMostRecentMatch(t *testing.T) {
	h := &History{entries: []string{"foo bar", "baz qux", "foo again"}}
	match, idx := searchHistory(h, "foo", 3)
	if match != "foo again" || idx != 2 {
		t.Errorf("got match=%q idx=%d", match, idx)
	}
}

func TestSearchHistoryNoMatch(t *testing.T) {
	h := &History{entries: []string{"a", "b"}}
	match, idx := searchHistory(h, "zzz", 2)
	if match != "" || idx != 2 {
		t.Errorf("got match=%q idx=%d", match, idx)
	}
}
