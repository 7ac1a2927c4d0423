package fbxerr

import (
	"testing"
	"time"
)

func TestWarning_Error(t *testing.T) {
	tests := []struct {
		name     string
		warning  *Warning
		expected string
	}{
		{
			name:     "warning with code",
			warning:  NewWarning(WarningLevelWarning, WarnIncorrectBooleanRepresentation, "byte 0x01 treated as true"),
			expected: "[warning] INCORRECT_BOOLEAN_REPRESENTATION: byte 0x01 treated as true",
		},
		{
			name:     "formatted warning",
			warning:  NewWarningf(WarningLevelInfo, WarnEmptyNodeName, "node %d has empty name", 3),
			expected: "[info] EMPTY_NODE_NAME: node 3 has empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.warning.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWarning_AtPositionAndNode(t *testing.T) {
	base := NewWarning(WarningLevelInfo, WarnEmptyNodeName, "node has an empty name")
	located := base.AtPosition(64).AtNode(3)

	if located.Position != 64 {
		t.Errorf("Position = %d, want 64", located.Position)
	}
	if !located.HasNodeID || located.NodeID != 3 {
		t.Errorf("node id not set: %+v", located)
	}
	if base.Position != -1 || base.HasNodeID {
		t.Error("AtPosition/AtNode must not mutate the receiver")
	}
}

func TestWarning_Timestamp(t *testing.T) {
	before := time.Now()
	warning := NewWarning(WarningLevelWarning, WarnFooterAnomaly, "test")
	after := time.Now()

	if warning.Timestamp.Before(before) || warning.Timestamp.After(after) {
		t.Error("warning timestamp not set correctly")
	}
}

func TestEmit(t *testing.T) {
	var got []*Warning
	sink := Sink(func(w *Warning) { got = append(got, w) })

	Emit(sink, NewWarning(WarningLevelWarning, WarnFooterAnomaly, "short footer padding"))
	Emit(nil, NewWarning(WarningLevelWarning, WarnFooterAnomaly, "dropped, nil sink"))

	if len(got) != 1 {
		t.Fatalf("Emit delivered %d warnings, want 1", len(got))
	}
	if got[0].Code != WarnFooterAnomaly {
		t.Errorf("Code = %q, want %q", got[0].Code, WarnFooterAnomaly)
	}
}

func TestWarningCollector(t *testing.T) {
	wc := NewWarningCollector()
	sink := wc.Sink()

	Emit(sink, NewWarning(WarningLevelWarning, WarnIncorrectBooleanRepresentation, "a"))
	Emit(sink, NewWarning(WarningLevelInfo, WarnEmptyNodeName, "b"))
	Emit(sink, NewWarning(WarningLevelWarning, WarnIncorrectBooleanRepresentation, "c"))

	if wc.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", wc.Count())
	}
	if !wc.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}

	byCode := wc.FilterByCode(WarnIncorrectBooleanRepresentation)
	if len(byCode) != 2 {
		t.Errorf("FilterByCode returned %d warnings, want 2", len(byCode))
	}

	byLevel := wc.FilterByLevel(WarningLevelInfo)
	if len(byLevel) != 1 {
		t.Errorf("FilterByLevel returned %d warnings, want 1", len(byLevel))
	}

	wc.Clear()
	if wc.HasWarnings() {
		t.Error("Clear() did not empty the collector")
	}
}
