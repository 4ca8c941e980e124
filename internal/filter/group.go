package filter

// Group is an include/exclude rule.
type Group struct {
	Includes []*Pattern
	Excludes []*Pattern
}

// NewGroup compiles includes and excludes into a Group.
func NewGroup(includes, excludes []string, opts Options) (*Group, error) {
	return newGroup(includes, excludes, func(src string) (*Pattern, error) {
		return Compile(src, opts)
	})
}

func newGroup(includes, excludes []string, compile func(string) (*Pattern, error)) (*Group, error) {
	g := &Group{
		Includes: make([]*Pattern, 0, len(includes)),
		Excludes: make([]*Pattern, 0, len(excludes)),
	}
	for _, src := range includes {
		p, err := compile(src)
		if err != nil {
			return nil, err
		}
		g.Includes = append(g.Includes, p)
	}
	for _, src := range excludes {
		p, err := compile(src)
		if err != nil {
			return nil, err
		}
		g.Excludes = append(g.Excludes, p)
	}
	return g, nil
}

// Matches reports whether path matches any include and no exclude.
func (g *Group) Matches(path string) bool {
	if g == nil || !anyMatch(g.Includes, path) {
		return false
	}
	return !anyMatch(g.Excludes, path)
}

func anyMatch(patterns []*Pattern, path string) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// Rule pairs a content kind with the group that selects it.
type Rule struct {
	Kind  Kind
	Group *Group
}

// ClassifiedSet is an ordered list of rules preceded by an ignore group.
// It is read-only after construction and safe for concurrent use.
type ClassifiedSet struct {
	ignore *Group
	rules  []Rule
}

// NewClassifiedSet builds a set from rules evaluated in order. ignore may be
// nil; when set, any path it matches is unclassified.
func NewClassifiedSet(ignore *Group, rules ...Rule) *ClassifiedSet {
	return &ClassifiedSet{ignore: ignore, rules: append([]Rule(nil), rules...)}
}

// Classify returns the kind of the first rule whose group matches path.
func (s *ClassifiedSet) Classify(path string) (Kind, bool) {
	if s.Ignored(path) {
		return 0, false
	}
	for _, r := range s.rules {
		if r.Group.Matches(path) {
			return r.Kind, true
		}
	}
	return 0, false
}

// Ignored reports whether path is matched by the ignore group.
func (s *ClassifiedSet) Ignored(path string) bool {
	return s.ignore.Matches(path)
}

// Rules returns a copy of the ordered rules.
func (s *ClassifiedSet) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}
