package pathname_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"lesiw.io/pathname"
)

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		path   string
		base   string
		format pathname.Format
		want   string
	}{
		{"/a/b/c.txt", "/a/d/", pathname.Posix, "../b/c.txt"},
		{"/a/b/c.txt", "/a/b/", pathname.Posix, "c.txt"},
		{"/a/b/c.txt", "/a/b/ignored.txt", pathname.Posix, "c.txt"},
		{"/x/y/", "/a/b/", pathname.Posix, "../../x/y/"},
		{"/a/b/", "/a/b/c/", pathname.Posix, "../"},
		{`C:\Users\Me\f.txt`, `c:\users\`, pathname.DOS, `Me\f.txt`},
		{"HD:a:b:f", "HD:a:c:", pathname.Mac, "::b:f"},
		{"DISK:[a.b]f.txt", "DISK:[a]", pathname.VMS, "[b]f.txt"},
	}
	for _, tt := range tests {
		p := pathname.Parse(tt.path, tt.format)
		base := pathname.Parse(tt.base, tt.format)
		rel, err := pathname.RelativeTo(p, base, tt.format)
		if err != nil {
			t.Fatalf("RelativeTo(%q, %q): %v", tt.path, tt.base, err)
		}
		if got := rel.String(); got != tt.want {
			t.Errorf("RelativeTo(%q, %q) = %q, want %q",
				tt.path, tt.base, got, tt.want)
		}
		if !rel.Relative || rel.Volume != "" {
			t.Errorf("RelativeTo(%q, %q) = %#v, want a relative path",
				tt.path, tt.base, rel)
		}
	}
}

func TestRelativeToSelf(t *testing.T) {
	tests := []struct {
		dir    string
		format pathname.Format
		want   []string
	}{
		{"/a/b/", pathname.Posix, []string{"."}},
		{`C:\a\`, pathname.DOS, []string{"."}},
		{"HD:a:", pathname.Mac, nil},
		{"DISK:[a]", pathname.VMS, nil},
	}
	for _, tt := range tests {
		p := pathname.Parse(tt.dir, tt.format)
		rel, err := pathname.RelativeTo(p, p, tt.format)
		if err != nil {
			t.Fatalf("RelativeTo(%q, itself): %v", tt.dir, err)
		}
		if !slices.Equal(rel.Dirs, tt.want) {
			t.Errorf("RelativeTo(%q, itself).Dirs = %q, want %q",
				tt.dir, rel.Dirs, tt.want)
		}
	}
}

func TestRelativeToNoCommonVolume(t *testing.T) {
	p := pathname.Parse(`C:\a\f.txt`, pathname.DOS)
	base := pathname.Parse(`D:\b\`, pathname.DOS)
	_, err := pathname.RelativeTo(p, base, pathname.DOS)
	if !errors.Is(err, pathname.ErrNoCommonVolume) {
		t.Errorf("RelativeTo(%q, %q) error = %v, want %v",
			p, base, err, pathname.ErrNoCommonVolume)
	}
	var rerr *pathname.RelativizeError
	if !errors.As(err, &rerr) {
		t.Errorf("RelativeTo(%q, %q) error = %#v, want *RelativizeError",
			p, base, err)
	}
}

func TestMakeRelativeWorkingDir(t *testing.T) {
	opts := pathname.NormalizeOptions{
		Getwd: func() (string, error) { return "/home/u", nil },
	}
	p := pathname.Parse("src/main.go", pathname.Posix)
	base := pathname.Parse("/home/u/docs/", pathname.Posix)
	rel, err := pathname.MakeRelative(p, base, pathname.Posix, opts)
	if err != nil {
		t.Fatalf("MakeRelative(%q, %q): %v", p, base, err)
	}
	if got, want := rel.String(), "../src/main.go"; got != want {
		t.Errorf("MakeRelative(%q, %q) = %q, want %q", p, base, got, want)
	}
}

func ExampleRelativeTo() {
	p := pathname.Parse("/srv/www/static/app.js", pathname.Posix)
	base := pathname.Parse("/srv/www/templates/", pathname.Posix)
	rel, err := pathname.RelativeTo(p, base, pathname.Posix)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rel)
	// Output:
	// ../static/app.js
}
