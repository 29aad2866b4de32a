package align

import (
	"testing"

	"subtran/internal/segment"
	"subtran/internal/srt"
)

func TestReassembleMatchingCounts(t *testing.T) {
	blocks := []srt.Block{
		{Index: 1, TimeRange: "00:00:01,000 --> 00:00:03,000", Text: "Hello there. How are you?"},
		{Index: 2, TimeRange: "00:00:04,000 --> 00:00:06,000", Text: "Fine."},
	}
	seg := segment.NewRules()
	pool := []string{"Szia.", "Hogy vagy?", "Jól."}
	out, shortfall := Reassemble(blocks, seg, pool)
	if shortfall != 0 {
		t.Fatalf("unexpected shortfall %d", shortfall)
	}
	if out[0].Text != "Szia. Hogy vagy?" {
		t.Errorf("block 1 text: %q", out[0].Text)
	}
	if out[1].Text != "Jól." {
		t.Errorf("block 2 text: %q", out[1].Text)
	}
	for i := range blocks {
		if out[i].Index != blocks[i].Index || out[i].TimeRange != blocks[i].TimeRange {
			t.Errorf("block %d lost its index or time range: %+v", i, out[i])
		}
	}
}

func TestReassembleExhaustedPool(t *testing.T) {
	blocks := []srt.Block{
		{Index: 1, TimeRange: "00:00:01,000 --> 00:00:02,000", Text: "One sentence here."},
		{Index: 2, TimeRange: "00:00:03,000 --> 00:00:04,000", Text: "Another one. And more."},
	}
	out, shortfall := Reassemble(blocks, segment.NewRules(), []string{"Egy mondat."})
	if shortfall != 2 {
		t.Fatalf("expected shortfall 2, got %d", shortfall)
	}
	if out[0].Text != "Egy mondat." {
		t.Errorf("block 1 text: %q", out[0].Text)
	}
	if out[1].Text != "" {
		t.Errorf("expected empty tail block, got %q", out[1].Text)
	}
	if out[1].TimeRange != blocks[1].TimeRange {
		t.Errorf("tail block lost its time range")
	}
}

func TestReassembleSurplusDropped(t *testing.T) {
	blocks := []srt.Block{
		{Index: 1, TimeRange: "00:00:01,000 --> 00:00:02,000", Text: "Only sentence."},
	}
	out, shortfall := Reassemble(blocks, segment.NewRules(), []string{"Első.", "Fölösleges."})
	if shortfall != 0 {
		t.Fatalf("unexpected shortfall %d", shortfall)
	}
	if out[0].Text != "Első." {
		t.Errorf("block text: %q", out[0].Text)
	}
}

func TestReassembleEmptyInput(t *testing.T) {
	out, shortfall := Reassemble(nil, segment.NewRules(), nil)
	if len(out) != 0 || shortfall != 0 {
		t.Fatalf("expected empty result, got %v shortfall %d", out, shortfall)
	}
}
