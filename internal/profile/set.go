package profile

import "fmt"

// Set is an ordered collection of uniquely named profiles.
type Set struct {
	byName map[string]*Profile
	order  []string
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Profile)}
}

// Add validates p and appends it. Adding a name that is already present is an
// error naming both sources.
func (s *Set) Add(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if existing, ok := s.byName[p.Name]; ok {
		return fmt.Errorf("duplicate launcher profile %q declared in %s and %s", p.Name, existing.Source, p.Source)
	}
	s.byName[p.Name] = p
	s.order = append(s.order, p.Name)
	return nil
}

// Override merges other into s. Profiles of other replace same-named profiles
// of s in place; new names are appended in other's order.
func (s *Set) Override(other *Set) {
	for _, name := range other.order {
		if _, ok := s.byName[name]; !ok {
			s.order = append(s.order, name)
		}
		s.byName[name] = other.byName[name]
	}
}

// Get returns the profile with the given name.
func (s *Set) Get(name string) (*Profile, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Names returns the profile names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Profiles returns the profiles in insertion order.
func (s *Set) Profiles() []*Profile {
	out := make([]*Profile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Len returns the number of profiles in the set.
func (s *Set) Len() int {
	return len(s.order)
}
