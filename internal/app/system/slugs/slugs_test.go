package slugs

import (
	"strings"
	"testing"
	"time"
)

func TestForPostShape(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := ForPost("Why I rebuilt my garden database from scratch again", at)

	if !strings.HasPrefix(got, "2026-03-14-why-i-rebuilt-my-garden-") {
		t.Errorf("ForPost() = %q, want date + first five words prefix", got)
	}
	if strings.Contains(got, "database") {
		t.Errorf("ForPost() = %q, title should be truncated to five words", got)
	}
}

func TestForPostUniqueSameTitleSameDay(t *testing.T) {
	at := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	a := ForPost("Daily log", at)
	b := ForPost("Daily log", at)
	if a == b {
		t.Errorf("two posts with the same title collided: %q", a)
	}
}

func TestForPostSpecialCharacters(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	got := ForPost("C'est l'été! (part #2)", at)
	for _, r := range got {
		if r != '-' && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			t.Fatalf("ForPost() = %q contains %q, want url-safe characters only", got, r)
		}
	}
}

func TestForProject(t *testing.T) {
	a := ForProject("Garden Notes")
	b := ForProject("Garden Notes")
	if !strings.HasPrefix(a, "garden-notes-") {
		t.Errorf("ForProject() = %q", a)
	}
	if a == b {
		t.Errorf("two projects with the same name collided: %q", a)
	}
}
