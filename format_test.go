package pathname_test

import (
	"runtime"
	"testing"

	"lesiw.io/pathname"
)

func TestFormatResolve(t *testing.T) {
	want := pathname.Posix
	if runtime.GOOS == "windows" {
		want = pathname.DOS
	}
	if got := pathname.Native.Resolve(); got != want {
		t.Errorf("Native.Resolve() = %v, want %v", got, want)
	}
	for _, f := range []pathname.Format{
		pathname.Posix, pathname.DOS, pathname.Mac, pathname.VMS,
	} {
		if got := f.Resolve(); got != f {
			t.Errorf("%v.Resolve() = %v, want %v", f, got, f)
		}
	}
}

func TestFormatTraits(t *testing.T) {
	tests := []struct {
		format     pathname.Format
		name       string
		sep        byte
		volSep     string
		caseSens   bool
		terminates string
	}{
		{pathname.Posix, "posix", '/', "", true, "/"},
		{pathname.DOS, "dos", '\\', ":", false, `\/`},
		{pathname.Mac, "mac", ':', "", false, ":"},
		{pathname.VMS, "vms", '.', ":", false, "]"},
	}
	for _, tt := range tests {
		f := tt.format
		if got := f.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := f.Separator(); got != tt.sep {
			t.Errorf("%v.Separator() = %q, want %q", f, got, tt.sep)
		}
		if got := f.VolumeSeparator(); got != tt.volSep {
			t.Errorf("%v.VolumeSeparator() = %q, want %q",
				f, got, tt.volSep)
		}
		if got := f.CaseSensitive(); got != tt.caseSens {
			t.Errorf("%v.CaseSensitive() = %v, want %v",
				f, got, tt.caseSens)
		}
		if got := f.Terminators(); got != tt.terminates {
			t.Errorf("%v.Terminators() = %q, want %q",
				f, got, tt.terminates)
		}
	}
}

func TestFormatIsSeparator(t *testing.T) {
	if !pathname.DOS.IsSeparator('/') {
		t.Error("DOS.IsSeparator('/') = false, want true")
	}
	if pathname.Posix.IsSeparator('\\') {
		t.Error("Posix.IsSeparator('\\\\') = true, want false")
	}
	if got := pathname.Format(42).String(); got != "format(42)" {
		t.Errorf("Format(42).String() = %q, want %q", got, "format(42)")
	}
}
