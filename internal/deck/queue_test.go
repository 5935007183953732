package deck

import "testing"

func TestQueueSeedsFromCurrentTrack(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Transport.ChangeTrack(3, false)

	d.Panels.Open(PanelQueue)
	if d.Queue.Selected() != 3 {
		t.Fatalf("Selected() = %d, want 3", d.Queue.Selected())
	}
}

func TestQueueCursorWrapsOverCatalog(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Transport.ChangeTrack(len(testTracks)-1, false)
	d.Panels.Open(PanelQueue)

	d.Queue.MoveDown()
	if d.Queue.Selected() != 0 {
		t.Fatalf("MoveDown() from last = %d, want 0", d.Queue.Selected())
	}
	d.Queue.MoveUp()
	if d.Queue.Selected() != len(testTracks)-1 {
		t.Fatalf("MoveUp() from 0 = %d, want last", d.Queue.Selected())
	}
}

func TestQueueCommitAndReset(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Panels.Open(PanelQueue)
	d.Queue.MoveDown()
	d.Queue.MoveDown()

	if !d.CommitQueue() {
		t.Fatalf("CommitQueue() = false")
	}
	if d.Transport.Index() != 2 || !d.Transport.Playing() {
		t.Fatalf("index %d playing %v, want 2 true", d.Transport.Index(), d.Transport.Playing())
	}

	d.Panels.Close()
	if d.Queue.Selected() != -1 {
		t.Fatalf("Selected() = %d after close, want -1", d.Queue.Selected())
	}
	if d.CommitQueue() {
		t.Fatalf("CommitQueue() = true with no selection")
	}
}

func TestSelectQueueRow(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Panels.Open(PanelQueue)
	if !d.SelectQueueRow(4) || d.Transport.Index() != 4 {
		t.Fatalf("SelectQueueRow(4) did not play track 4")
	}
	if d.SelectQueueRow(5) || d.SelectQueueRow(-1) {
		t.Fatalf("SelectQueueRow accepted an out-of-range row")
	}
}
