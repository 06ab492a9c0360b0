package valkey

import "testing"

func TestOperation(t *testing.T) {
	tests := []struct {
		key, want string
	}{
		{"projects:all", "projects:all"},
		{"projects:id:42", "projects:id"},
		{"projects:id:a:b", "projects:id"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := operation(tt.key); got != tt.want {
			t.Errorf("operation(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
