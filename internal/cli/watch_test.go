package cli

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestChanged(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "charts/sales.toml", Op: fsnotify.Write}, true},
		{"replace", fsnotify.Event{Name: "charts/sales.toml", Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: "charts/./sales.toml", Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: "charts/sales.toml", Op: fsnotify.Chmod}, false},
		{"sibling", fsnotify.Event{Name: "charts/other.toml", Op: fsnotify.Write}, false},
		{"remove", fsnotify.Event{Name: "charts/sales.toml", Op: fsnotify.Remove}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changed(tt.ev, "charts/sales.toml"); got != tt.want {
				t.Errorf("changed() = %v, want %v", got, tt.want)
			}
		})
	}
}
