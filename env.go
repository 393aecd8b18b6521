package pathname

import (
	"os"
	"os/user"
	"strings"
)

// An Environment supplies the variables and home directories used by the
// NormEnvVars and NormTilde passes.
type Environment interface {
	// LookupEnv returns the value of the named variable and whether it
	// is set.
	LookupEnv(key string) (string, bool)

	// HomeDir returns the home directory of the named user, or of the
	// current user when name is empty.
	HomeDir(name string) (string, error)
}

// OSEnv reads the process environment and the system user database.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (OSEnv) HomeDir(name string) (string, error) {
	if name == "" {
		return os.UserHomeDir()
	}
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

// MapEnv is an Environment backed by fixed maps. Homes is keyed by user
// name, with "" for the current user.
type MapEnv struct {
	Vars  map[string]string
	Homes map[string]string
}

func (e MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

func (e MapEnv) HomeDir(name string) (string, error) {
	if h, ok := e.Homes[name]; ok {
		return h, nil
	}
	return "", &PathError{Op: "home", Path: "~" + name, Err: ErrNotExist}
}

// ExpandEnv replaces $VAR, ${VAR} and $(VAR) references in s, plus %VAR%
// references for DOS. Unset variables are left as written. Outside DOS a
// backslash before $ keeps the reference literal, backslash included, so
// expanding the result again leaves it unchanged.
func ExpandEnv(s string, f Format, env Environment) string {
	if env == nil {
		env = OSEnv{}
	}
	dos := f.Resolve() == DOS
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && !dos && i+1 < len(s) && s[i+1] == '$':
			b.WriteString(`\$`)
			i++
		case c == '$':
			name, n := envRef(s[i+1:])
			if v, ok := lookup(env, name); ok {
				b.WriteString(v)
				i += n
			} else {
				b.WriteByte(c)
			}
		case c == '%' && dos:
			end := strings.IndexByte(s[i+1:], '%')
			if end <= 0 {
				b.WriteByte(c)
				continue
			}
			if v, ok := lookup(env, s[i+1:i+1+end]); ok {
				b.WriteString(v)
				i += end + 1
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// envRef parses the variable reference following a $ and returns its name
// and the number of bytes it occupies.
func envRef(s string) (name string, n int) {
	if s == "" {
		return "", 0
	}
	if s[0] == '{' || s[0] == '(' {
		closer := byte('}')
		if s[0] == '(' {
			closer = ')'
		}
		end := strings.IndexByte(s, closer)
		if end < 0 {
			return "", 0
		}
		return s[1:end], end + 1
	}
	for n < len(s) && isNameByte(s[n]) {
		n++
	}
	return s[:n], n
}

func isNameByte(c byte) bool {
	return c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}

func lookup(env Environment, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return env.LookupEnv(name)
}
