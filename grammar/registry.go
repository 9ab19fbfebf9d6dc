package grammar

import "github.com/canopy-parse/canopy/forest"

// Registry resolves named predicates at commit time: the tagged set of
// NodeTest/AncestorTest/Precondition/Processor, stored by name so rules and
// leaves can reference them by string instead of by closure.
type Registry struct {
	nodeTests      map[string]forest.NodeTest
	ancestorTests  map[string]forest.AncestorTest
	preconditions  map[string]forest.Precondition
	processors     map[string]forest.Processor
}

// NewRegistry returns an empty predicate registry.
func NewRegistry() *Registry {
	return &Registry{
		nodeTests:     map[string]forest.NodeTest{},
		ancestorTests: map[string]forest.AncestorTest{},
		preconditions: map[string]forest.Precondition{},
		processors:    map[string]forest.Processor{},
	}
}

// RegisterNodeTest names a node test for later reference by rules/leaves.
func (r *Registry) RegisterNodeTest(name string, t forest.NodeTest) *Registry {
	r.nodeTests[name] = t
	return r
}

// RegisterAncestorTest names a structural test.
func (r *Registry) RegisterAncestorTest(name string, t forest.AncestorTest) *Registry {
	r.ancestorTests[name] = t
	return r
}

// RegisterPrecondition names a precondition.
func (r *Registry) RegisterPrecondition(name string, t forest.Precondition) *Registry {
	r.preconditions[name] = t
	return r
}

// RegisterProcessor names a processor.
func (r *Registry) RegisterProcessor(name string, t forest.Processor) *Registry {
	r.processors[name] = t
	return r
}

func (r *Registry) resolveNodeTest(name string) (forest.NodeTest, bool) {
	t, ok := r.nodeTests[name]
	return t, ok
}

func (r *Registry) resolveAncestorTest(name string) (forest.AncestorTest, bool) {
	t, ok := r.ancestorTests[name]
	return t, ok
}

func (r *Registry) resolvePrecondition(name string) (forest.Precondition, bool) {
	t, ok := r.preconditions[name]
	return t, ok
}

func (r *Registry) resolveProcessor(name string) (forest.Processor, bool) {
	t, ok := r.processors[name]
	return t, ok
}
