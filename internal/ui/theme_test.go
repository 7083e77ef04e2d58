package ui

import (
	"testing"

	"github.com/five82/listsync/internal/diff"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Dracula" {
		t.Fatalf("ThemeNames()[0] = %q, want Dracula", names[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Nightfox" {
		t.Fatalf("NextTheme(Dracula) = %q, want Nightfox", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
	if got := GetTheme("nope").Name; got != "Dracula" {
		t.Fatalf("GetTheme(nope).Name = %q, want Dracula", got)
	}
}

func TestKindColor(t *testing.T) {
	th := GetTheme("Slate")
	tests := []struct {
		kind diff.Kind
		want string
	}{
		{diff.Insert, th.Success},
		{diff.Delete, th.Danger},
		{diff.Substitute, th.Warning},
		{diff.Kind(99), th.Muted},
	}
	for _, tt := range tests {
		if got := th.KindColor(tt.kind); got != tt.want {
			t.Errorf("KindColor(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
