// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"slices"
	"strings"
)

// Environ is a read-only set of environment variables, such as the one a
// shell consults for HOME and PATH and hands down to the programs it runs.
type Environ interface {
	// Get retrieves a variable by its name. An unset variable and a
	// variable set to the empty string are indistinguishable.
	Get(name string) string

	// Each iterates over all the variables in the environment, stopping
	// early if fn returns false.
	Each(fn func(name, value string) bool)
}

// FuncEnviron wraps a lookup function as an [Environ], such as [os.Getenv].
// Each is a no-op, as the function cannot list its variables.
func FuncEnviron(fn func(string) string) Environ {
	return funcEnviron(fn)
}

type funcEnviron func(string) string

func (f funcEnviron) Get(name string) string { return f(name) }

func (f funcEnviron) Each(func(name, value string) bool) {}

// ListEnviron returns an [Environ] with the supplied variables, in the form
// "key=value". If a variable is set multiple times, the last value is used.
// Pairs without an equal sign or without a name are dropped.
func ListEnviron(pairs ...string) Environ {
	list := append([]string{}, pairs...)
	// A stable sort keeps duplicates in their original order,
	// so that we can keep the last one.
	slices.SortStableFunc(list, func(a, b string) int {
		return strings.Compare(pairName(a), pairName(b))
	})
	last := ""
	for i := 0; i < len(list); i++ {
		s := list[i]
		sep := strings.IndexByte(s, '=')
		if sep <= 0 {
			// invalid element; remove it
			list = slices.Delete(list, i, i+1)
			i--
			continue
		}
		name := s[:sep]
		if last == name {
			// duplicate; the last one wins
			list = slices.Delete(list, i-1, i)
			i--
			continue
		}
		last = name
	}
	return listEnviron(list)
}

func pairName(pair string) string {
	if i := strings.IndexByte(pair, '='); i >= 0 {
		return pair[:i]
	}
	return pair
}

type listEnviron []string

func (l listEnviron) Get(name string) string {
	prefix := name + "="
	for _, pair := range l {
		if val, ok := strings.CutPrefix(pair, prefix); ok {
			return val
		}
	}
	return ""
}

func (l listEnviron) Each(fn func(name, value string) bool) {
	for _, pair := range l {
		i := strings.IndexByte(pair, '=')
		if i < 0 {
			// can't happen; see above
			panic("expand.listEnviron: did not expect malformed name-value pair: " + pair)
		}
		if !fn(pair[:i], pair[i+1:]) {
			return
		}
	}
}

// Pairs returns all the variables in env in the "key=value" form,
// which is what [os/exec.Cmd.Env] expects. Variables named in override
// take precedence over the ones in env.
func Pairs(env Environ, override ...string) []string {
	list := make([]string, 0, 32)
	env.Each(func(name, value string) bool {
		list = append(list, name+"="+value)
		return true
	})
	return ListEnviron(append(list, override...)...).(listEnviron)
}
