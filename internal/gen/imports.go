package gen

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"fieldmap/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file. Names taken from
// member types are fixed because the type text is copied verbatim; the
// runtime, iter and item packages may be renamed to avoid clashes.
type importSet struct {
	byName map[string]string // local name -> path
	specs  []importSpec
}

func newImportSet() *importSet {
	return &importSet{byName: make(map[string]string)}
}

// conflict reports the path already bound to name, if it differs from p.
func (s *importSet) conflict(name, p string) (string, bool) {
	bound, ok := s.byName[name]
	if !ok || bound == p {
		return "", false
	}

	return bound, true
}

// fixed adds path p under exactly name.
func (s *importSet) fixed(name, p string) error {
	if bound, ok := s.conflict(name, p); ok {
		return fmt.Errorf("package name %q refers to both %s and %s", name, bound, p)
	}

	s.add(name, p)

	return nil
}

// flexible adds path p and returns the name to refer to it by. An existing
// import of p is reused.
func (s *importSet) flexible(p string) string {
	for _, spec := range s.specs {
		if spec.Path == p {
			return s.nameOf(spec)
		}
	}

	preferred := common.PkgAlias(p)
	name := preferred

	for n := 1; ; n++ {
		if _, taken := s.byName[name]; !taken {
			break
		}

		name = preferred + strconv.Itoa(n)
	}

	s.add(name, p)

	return name
}

func (s *importSet) add(name, p string) {
	if _, ok := s.byName[name]; ok {
		return
	}

	s.byName[name] = p

	spec := importSpec{Path: p}
	if name != path.Base(p) {
		spec.Alias = name
	}

	s.specs = append(s.specs, spec)
}

func (s *importSet) nameOf(spec importSpec) string {
	if spec.Alias != "" {
		return spec.Alias
	}

	return path.Base(spec.Path)
}

// sorted returns the imports ordered by path.
func (s *importSet) sorted() []importSpec {
	out := slices.Clone(s.specs)
	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}
