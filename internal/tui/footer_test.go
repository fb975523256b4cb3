package tui

import (
	"strings"
	"testing"
)

func TestFooterModel_Badges(t *testing.T) {
	f := NewFooterModel()
	f.SetWidth(100)

	if !strings.Contains(f.View(), "RUNNING") {
		t.Error("expected RUNNING badge by default")
	}

	f.SetPaused(true)
	if !strings.Contains(f.View(), "PAUSED") {
		t.Error("expected PAUSED badge")
	}

	f.SetDone(true)
	if !strings.Contains(f.View(), "DONE") {
		t.Error("expected DONE badge to win over PAUSED")
	}

	f.SetError(true)
	if !strings.Contains(f.View(), "ERROR") {
		t.Error("expected ERROR badge to win over DONE")
	}
}

func TestFooterModel_Hints(t *testing.T) {
	f := NewFooterModel()
	f.SetWidth(120)

	view := f.View()
	for _, hint := range []string{"quit", "pause", "rerun", "results"} {
		if !strings.Contains(view, hint) {
			t.Errorf("expected footer to contain %q hint", hint)
		}
	}
}

func TestFooterModel_Narrow_DropsScrollHints(t *testing.T) {
	f := NewFooterModel()
	f.SetWidth(60)

	view := f.View()
	if strings.Contains(view, "scroll") {
		t.Error("expected scroll hints to be dropped on a narrow footer")
	}
	if !strings.Contains(view, "quit") {
		t.Error("expected quit hint to survive on a narrow footer")
	}
}
