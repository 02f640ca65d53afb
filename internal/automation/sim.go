package automation

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Call captures one request made against a SimPort.
type Call struct {
	Method string
	Target string
	Args   Args
}

// SimObject is a modeler object known to a SimPort.
type SimObject struct {
	ID    int
	Faces map[Axis]int
}

// SimSetup is an analysis setup held by a SimPort.
type SimSetup struct {
	Type   string
	Props  map[string]any
	Sweeps []Args
}

// SimBoundary is a boundary assigned through a SimPort.
type SimBoundary struct {
	Kind BoundaryKind
	Name string
	Args Args
}

// SimConfig seeds a SimPort.
type SimConfig struct {
	Ports              []string
	Setups             map[string]SimSetup
	SetupOrder         []string
	Objects            map[string]SimObject
	SymmetryMultiplier int
	GeometryMode       string
}

// SimPort is an in-memory DesignPort useful for tests and offline runs.
// It keeps setups, sweeps and boundaries in memory and records every call.
//
// SimPort is safe for concurrent use.
type SimPort struct {
	mu sync.Mutex

	ports      []string
	setups     map[string]*SimSetup
	setupOrder []string
	objects    map[string]SimObject
	boundaries []SimBoundary
	netsFound  bool
	symmetry   int
	geometry   string

	calls []Call

	// FailOn makes the named method return the given error, for tests.
	FailOn map[string]error
}

// NewSimPort constructs a simulator from cfg. Setups not listed in
// cfg.SetupOrder are appended in name order.
func NewSimPort(cfg SimConfig) *SimPort {
	s := &SimPort{
		ports:    append([]string(nil), cfg.Ports...),
		setups:   make(map[string]*SimSetup),
		objects:  make(map[string]SimObject),
		symmetry: cfg.SymmetryMultiplier,
		geometry: cfg.GeometryMode,
		FailOn:   make(map[string]error),
	}
	if s.symmetry == 0 {
		s.symmetry = 1
	}
	if s.geometry == "" {
		s.geometry = "XY"
	}

	listed := make(map[string]bool)
	for _, name := range cfg.SetupOrder {
		if _, ok := cfg.Setups[name]; ok && !listed[name] {
			s.setupOrder = append(s.setupOrder, name)
			listed[name] = true
		}
	}
	var rest []string
	for name := range cfg.Setups {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	s.setupOrder = append(s.setupOrder, rest...)

	for name, setup := range cfg.Setups {
		props := make(map[string]any, len(setup.Props))
		for k, v := range setup.Props {
			props[k] = v
		}
		s.setups[name] = &SimSetup{Type: setup.Type, Props: props}
	}
	for name, obj := range cfg.Objects {
		s.objects[name] = obj
	}
	return s
}

func (s *SimPort) record(method, target string, args Args) error {
	s.calls = append(s.calls, Call{Method: method, Target: target, Args: append(Args(nil), args...)})
	if err, ok := s.FailOn[method]; ok {
		return err
	}
	return nil
}

// Calls returns a copy of every call made so far, in order.
func (s *SimPort) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Boundaries returns the assigned boundaries in assignment order.
func (s *SimPort) Boundaries() []SimBoundary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SimBoundary(nil), s.boundaries...)
}

// Sweeps returns the sweeps inserted under setup.
func (s *SimPort) Sweeps(setup string) []Args {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.setups[setup]; ok {
		return append([]Args(nil), st.Sweeps...)
	}
	return nil
}

// NetsIdentified reports whether AutoIdentifyNets has run.
func (s *SimPort) NetsIdentified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.netsFound
}

func (s *SimPort) Ports(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("Ports", "", nil); err != nil {
		return nil, err
	}
	return append([]string(nil), s.ports...), nil
}

func (s *SimPort) SolutionSetups(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("SolutionSetups", "", nil); err != nil {
		return nil, err
	}
	return append([]string(nil), s.setupOrder...), nil
}

func (s *SimPort) InsertSetup(ctx context.Context, setupType string, args Args) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("InsertSetup", setupType, args); err != nil {
		return err
	}
	name := args.Name()
	if name == "" {
		return fmt.Errorf("insert setup: missing NAME")
	}
	if _, ok := s.setups[name]; ok {
		return fmt.Errorf("insert setup %q: already exists", name)
	}
	s.setups[name] = &SimSetup{Type: setupType, Props: args.Map()}
	s.setupOrder = append(s.setupOrder, name)
	return nil
}

func (s *SimPort) EditSetup(ctx context.Context, name string, args Args) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("EditSetup", name, args); err != nil {
		return err
	}
	st, ok := s.setups[name]
	if !ok {
		return fmt.Errorf("edit setup %q: %w", name, ErrNotFound)
	}
	for k, v := range args.Map() {
		st.Props[k] = v
	}
	return nil
}

func (s *SimPort) SetupProps(ctx context.Context, name string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("SetupProps", name, nil); err != nil {
		return nil, err
	}
	st, ok := s.setups[name]
	if !ok {
		return nil, fmt.Errorf("setup %q: %w", name, ErrNotFound)
	}
	props := make(map[string]any, len(st.Props))
	for k, v := range st.Props {
		props[k] = v
	}
	return props, nil
}

func (s *SimPort) InsertFrequencySweep(ctx context.Context, setup string, args Args) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("InsertFrequencySweep", setup, args); err != nil {
		return err
	}
	st, ok := s.setups[setup]
	if !ok {
		return fmt.Errorf("insert sweep into %q: %w", setup, ErrNotFound)
	}
	st.Sweeps = append(st.Sweeps, append(Args(nil), args...))
	return nil
}

func (s *SimPort) AssignBoundary(ctx context.Context, kind BoundaryKind, args Args) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("AssignBoundary", string(kind), args); err != nil {
		return err
	}
	name := args.Name()
	for _, b := range s.boundaries {
		if b.Name == name {
			return fmt.Errorf("assign %s %q: already exists", kind, name)
		}
	}
	s.boundaries = append(s.boundaries, SimBoundary{Kind: kind, Name: name, Args: append(Args(nil), args...)})
	return nil
}

func (s *SimPort) AutoIdentifyNets(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("AutoIdentifyNets", "", nil); err != nil {
		return err
	}
	s.netsFound = true
	return nil
}

func (s *SimPort) FaceOnAxis(ctx context.Context, object string, axis Axis) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FaceOnAxis", object, Args{int(axis)}); err != nil {
		return 0, err
	}
	obj, ok := s.objects[object]
	if !ok {
		return 0, fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	return obj.Faces[axis], nil
}

func (s *SimPort) ObjectIDs(ctx context.Context, names []string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	args := make(Args, len(names))
	for i, n := range names {
		args[i] = n
	}
	if err := s.record("ObjectIDs", "", args); err != nil {
		return nil, err
	}
	ids := make([]int, len(names))
	for i, n := range names {
		obj, ok := s.objects[n]
		if !ok {
			return nil, fmt.Errorf("object %q: %w", n, ErrNotFound)
		}
		ids[i] = obj.ID
	}
	return ids, nil
}

func (s *SimPort) SymmetryMultiplier(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("SymmetryMultiplier", "", nil); err != nil {
		return 0, err
	}
	return s.symmetry, nil
}

func (s *SimPort) GeometryMode(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("GeometryMode", "", nil); err != nil {
		return "", err
	}
	return s.geometry, nil
}

var _ DesignPort = (*SimPort)(nil)
