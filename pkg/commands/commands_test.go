package commands

import "testing"

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	if root.Use != "sessio" {
		t.Fatalf("unexpected root command: %q", root.Use)
	}

	want := map[string]bool{
		"ui":      false,
		"list":    false,
		"summary": false,
		"version": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}
