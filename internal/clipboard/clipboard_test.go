package clipboard

import (
	"errors"
	"testing"

	"pagelet/internal/page"
)

func TestMemoryRecordsWrites(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Last(); ok {
		t.Error("Last() on empty clipboard reports contents")
	}

	if err := m.WriteText("first"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := m.WriteText("second"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	if got, ok := m.Last(); !ok || got != "second" {
		t.Errorf("Last() = (%q, %v), want (%q, true)", got, ok, "second")
	}
	if got := m.Writes(); got != 2 {
		t.Errorf("Writes() = %d, want 2", got)
	}
}

func TestFailing(t *testing.T) {
	sentinel := errors.New("denied")
	if err := (Failing{Err: sentinel}).WriteText("x"); !errors.Is(err, sentinel) {
		t.Errorf("WriteText() error = %v, want %v", err, sentinel)
	}
	if err := (Failing{}).WriteText("x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("WriteText() error = %v, want %v", err, ErrUnavailable)
	}
}

func TestClipboardsSatisfyPageContract(t *testing.T) {
	var _ page.Clipboard = System{}
	var _ page.Clipboard = NewMemory()
	var _ page.Clipboard = Failing{}
}

func TestWriterCommand(t *testing.T) {
	none := func(string) (string, error) { return "", errors.New("not found") }
	only := func(name string) func(string) (string, error) {
		return func(tool string) (string, error) {
			if tool == name {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		}
	}

	tests := []struct {
		name     string
		goos     string
		look     func(string) (string, error)
		wantTool string
		wantErr  bool
	}{
		{"darwin", "darwin", none, "pbcopy", false},
		{"windows", "windows", none, "clip", false},
		{"linux wayland", "linux", only("wl-copy"), "wl-copy", false},
		{"linux xclip", "linux", only("xclip"), "xclip", false},
		{"linux xsel", "linux", only("xsel"), "xsel", false},
		{"linux bare", "linux", none, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, _, err := writerCommand(tt.goos, tt.look)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("writerCommand() error = %v, want ErrUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("writerCommand() error = %v", err)
			}
			if tool != tt.wantTool {
				t.Errorf("writerCommand() tool = %q, want %q", tool, tt.wantTool)
			}
		})
	}
}
