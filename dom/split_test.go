package dom

import "testing"

func TestSplitSpecialAttribute(t *testing.T) {
	before, after, ok := splitSpecialAttribute("Mesh\x00\x01Model")
	if !ok || before != "Mesh" || after != "Model" {
		t.Fatalf("split = (%q,%q,%v)", before, after, ok)
	}
	if _, _, ok := splitSpecialAttribute("NoSeparatorHere"); ok {
		t.Fatal("want ok=false when the separator is absent")
	}
}
