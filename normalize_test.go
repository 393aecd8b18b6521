package pathname_test

import (
	"errors"
	"fmt"
	"testing"

	"lesiw.io/pathname"
)

var testEnv = pathname.MapEnv{
	Vars: map[string]string{
		"HOME": "/home/u",
		"PROJ": "work/proj",
	},
	Homes: map[string]string{
		"":    "/home/u",
		"bob": "/users/bob",
	},
}

func normalize(
	t *testing.T, raw string, f pathname.Format, flags pathname.NormFlag,
) string {
	t.Helper()
	p, err := pathname.Normalize(pathname.Parse(raw, f), nil,
		pathname.NormalizeOptions{
			Flags: flags,
			Env:   testEnv,
			Getwd: func() (string, error) { return "/cwd", nil },
		})
	if err != nil {
		t.Fatalf("Normalize(%q, %03b): %v", raw, flags, err)
	}
	return p.String()
}

func TestNormalizeDots(t *testing.T) {
	tests := []struct {
		raw    string
		format pathname.Format
		want   string
	}{
		{"/a/./b/../c", pathname.Posix, "/a/c"},
		{"/a/../../b", pathname.Posix, "/b"},
		{"/..", pathname.Posix, "/"},
		{"a/../../b", pathname.Posix, "../b"},
		{"../../a", pathname.Posix, "../../a"},
		{"./a/.", pathname.Posix, "a/"},
		{"a/..", pathname.Posix, ""},
		{`C:\a\..\..\b`, pathname.DOS, `C:\b`},
		{`a\..\..\b`, pathname.DOS, `..\b`},
	}
	for _, tt := range tests {
		got := normalize(t, tt.raw, tt.format, pathname.NormDots)
		if got != tt.want {
			t.Errorf("Normalize(%q, NormDots) = %q, want %q",
				tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []struct {
		raw    string
		format pathname.Format
	}{
		{"/a/./b/../c", pathname.Posix},
		{"a/../../b", pathname.Posix},
		{"~/x/../y", pathname.Posix},
		{"$PROJ/src", pathname.Posix},
		{`C:\Dir\..\File.TXT`, pathname.DOS},
		{`Sub\Dir`, pathname.DOS},
	}
	for _, in := range inputs {
		once := normalize(t, in.raw, in.format, pathname.NormAll)
		twice := normalize(t, once, in.format, pathname.NormAll)
		if once != twice {
			t.Errorf("Normalize(%q) = %q, again = %q", in.raw, once, twice)
		}
	}
}

func TestNormalizeCase(t *testing.T) {
	got := normalize(t, `C:\Foo\BAR.TXT`, pathname.DOS, pathname.NormCase)
	if want := `c:\foo\bar.txt`; got != want {
		t.Errorf("Normalize(DOS, NormCase) = %q, want %q", got, want)
	}
	got = normalize(t, "/Foo/BAR.TXT", pathname.Posix, pathname.NormCase)
	if want := "/Foo/BAR.TXT"; got != want {
		t.Errorf("Normalize(Posix, NormCase) = %q, want %q", got, want)
	}
}

func TestNormalizeEnv(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$HOME/docs", "/home/u/docs"},
		{"${PROJ}/x.go", "work/proj/x.go"},
		{"$UNSET/x", "$UNSET/x"},
	}
	for _, tt := range tests {
		got := normalize(t, tt.raw, pathname.Posix, pathname.NormEnvVars)
		if got != tt.want {
			t.Errorf("Normalize(%q, NormEnvVars) = %q, want %q",
				tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTilde(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"~/docs/a.txt", "/home/u/docs/a.txt"},
		{"~", "/home/u/"},
		{"~bob/x", "/users/bob/x"},
		{"a/~/b", "a/~/b"},
		{"/~bob/x", "/~bob/x"},
	}
	for _, tt := range tests {
		got := normalize(t, tt.raw, pathname.Posix, pathname.NormTilde)
		if got != tt.want {
			t.Errorf("Normalize(%q, NormTilde) = %q, want %q",
				tt.raw, got, tt.want)
		}
	}

	// DOS paths have no home directory shorthand.
	got := normalize(t, `~\x`, pathname.DOS, pathname.NormTilde)
	if want := `~\x`; got != want {
		t.Errorf("Normalize(DOS %q, NormTilde) = %q, want %q",
			`~\x`, got, want)
	}
}

func TestNormalizeTildeUnknownUser(t *testing.T) {
	p := pathname.Parse("~nobody/x", pathname.Posix)
	_, err := pathname.Normalize(p, nil, pathname.NormalizeOptions{
		Flags: pathname.NormTilde,
		Env:   testEnv,
	})
	if !errors.Is(err, pathname.ErrNoHome) {
		t.Errorf("Normalize(%q) error = %v, want %v",
			p, err, pathname.ErrNoHome)
	}
	var nerr *pathname.NormalizeError
	if !errors.As(err, &nerr) || nerr.Pass != "tilde" {
		t.Errorf("Normalize(%q) error = %#v, want tilde *NormalizeError",
			p, err)
	}
}

func TestNormalizeAbsolute(t *testing.T) {
	got := normalize(t, "b/c", pathname.Posix, pathname.NormAbsolute)
	if want := "/cwd/b/c"; got != want {
		t.Errorf("Normalize(%q, NormAbsolute) = %q, want %q",
			"b/c", got, want)
	}

	base := pathname.ParseDir(`D:\base`, pathname.DOS)
	p := pathname.Parse(`sub\f.txt`, pathname.DOS)
	abs, err := pathname.Normalize(p, &base, pathname.NormalizeOptions{
		Flags: pathname.NormAbsolute,
	})
	if err != nil {
		t.Fatalf("Normalize(%q, base %q): %v", p, base, err)
	}
	if got, want := abs.String(), `D:\base\sub\f.txt`; got != want {
		t.Errorf("Normalize(%q, base %q) = %q, want %q",
			p, base, got, want)
	}

	// A rooted DOS path without a volume takes the base's volume.
	p = pathname.Parse(`\top`, pathname.DOS)
	abs, err = pathname.Normalize(p, &base, pathname.NormalizeOptions{
		Flags: pathname.NormAbsolute,
	})
	if err != nil {
		t.Fatalf("Normalize(%q, base %q): %v", p, base, err)
	}
	if got, want := abs.String(), `D:\top`; got != want {
		t.Errorf("Normalize(%q, base %q) = %q, want %q",
			p, base, got, want)
	}
}

func TestNormalizeGetwdError(t *testing.T) {
	errNoCwd := errors.New("no cwd")
	p := pathname.Parse("rel", pathname.Posix)
	_, err := pathname.Normalize(p, nil, pathname.NormalizeOptions{
		Flags: pathname.NormAbsolute,
		Getwd: func() (string, error) { return "", errNoCwd },
	})
	if !errors.Is(err, errNoCwd) {
		t.Errorf("Normalize(%q) error = %v, want %v", p, err, errNoCwd)
	}
}

func TestMakeAbsolute(t *testing.T) {
	base := pathname.ParseDir("/srv", pathname.Posix)
	p := pathname.Parse("./www/../data/x", pathname.Posix)
	abs, err := pathname.MakeAbsolute(p, &base, pathname.NormalizeOptions{})
	if err != nil {
		t.Fatalf("MakeAbsolute(%q): %v", p, err)
	}
	if got, want := abs.String(), "/srv/data/x"; got != want {
		t.Errorf("MakeAbsolute(%q) = %q, want %q", p, got, want)
	}
}

func TestReplaceHomeDir(t *testing.T) {
	p := pathname.Parse("/home/u/docs/x", pathname.Posix)
	q, ok := pathname.ReplaceHomeDir(p, testEnv)
	if !ok {
		t.Fatalf("ReplaceHomeDir(%q) = false", p)
	}
	if got, want := q.String(), "~/docs/x"; got != want {
		t.Errorf("ReplaceHomeDir(%q) = %q, want %q", p, got, want)
	}

	for _, raw := range []string{"/home/other/x", "/home", "home/u/x"} {
		p := pathname.Parse(raw, pathname.Posix)
		if q, ok := pathname.ReplaceHomeDir(p, testEnv); ok {
			t.Errorf("ReplaceHomeDir(%q) = %q, want unchanged", raw, q)
		}
	}
}

func TestSameAs(t *testing.T) {
	tests := []struct {
		a, b   string
		format pathname.Format
		want   bool
	}{
		{"/a/./b/../c", "/a/c", pathname.Posix, true},
		{"/a/C", "/a/c", pathname.Posix, false},
		{`C:\Foo\bar.txt`, `c:\FOO\BAR.TXT`, pathname.DOS, true},
		{`C:\a`, `D:\a`, pathname.DOS, false},
		{"~/x", "/home/u/x", pathname.Posix, true},
	}
	for _, tt := range tests {
		a := pathname.Parse(tt.a, tt.format)
		b := pathname.Parse(tt.b, tt.format)
		got, err := pathname.SameAs(a, b, pathname.NormalizeOptions{
			Env: testEnv,
		})
		if err != nil {
			t.Fatalf("SameAs(%q, %q): %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("SameAs(%q, %q) = %v, want %v",
				tt.a, tt.b, got, tt.want)
		}
	}
}

func ExampleNormalize() {
	p := pathname.Parse("~/src/../notes.txt", pathname.Posix)
	p, err := pathname.Normalize(p, nil, pathname.NormalizeOptions{
		Flags: pathname.NormTilde | pathname.NormDots,
		Env: pathname.MapEnv{
			Homes: map[string]string{"": "/home/gopher"},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p)
	// Output:
	// /home/gopher/notes.txt
}
