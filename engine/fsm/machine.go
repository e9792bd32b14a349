package fsm

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lixenwraith/racecast/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:          make(map[StateID]*Node[T]),
		regionInitials: make(map[string]StateID),
		regions:        make(map[string]*RegionState),
		guardReg:       make(map[string]GuardFunc[T]),
		actionReg:      make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init initializes all configured regions
func (m *Machine[T]) Init(ctx T) error {
	if len(m.regionInitials) == 0 {
		return fmt.Errorf("FSM has no defined regions to initialize")
	}

	for _, regionName := range sortedKeys(m.regionInitials) {
		if err := m.initRegion(ctx, regionName, m.regionInitials[regionName]); err != nil {
			return fmt.Errorf("region '%s': %w", regionName, err)
		}
	}

	return nil
}

// initRegion initializes a single region
func (m *Machine[T]) initRegion(ctx T, regionName string, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	region := &RegionState{
		Name:          regionName,
		ActiveStateID: initialID,
		ActivePath:    make([]StateID, len(node.Path)),
	}
	copy(region.ActivePath, node.Path)

	m.regions[regionName] = region

	// Execute OnEnter for the entire chain from Root to Initial
	for _, id := range region.ActivePath {
		if n, exists := m.nodes[id]; exists {
			runActions(ctx, n.OnEnter)
		}
	}

	return nil
}

// HandleEvent routes an external event through all active regions
// Returns true if the event triggered a transition in any region
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	handled := false

	for _, name := range sortedKeys(m.regions) {
		region := m.regions[name]
		if target, ok := m.match(ctx, region, eventType); ok {
			m.transitionRegion(ctx, region, target)
			handled = true
		}
	}

	return handled
}

// Accepts reports whether HandleEvent would trigger a transition, without side effects
func (m *Machine[T]) Accepts(ctx T, eventType event.EventType) bool {
	for _, region := range m.regions {
		if _, ok := m.match(ctx, region, eventType); ok {
			return true
		}
	}
	return false
}

// match finds the first transition for the event, bubbling Leaf -> Parent -> Root
func (m *Machine[T]) match(ctx T, region *RegionState, eventType event.EventType) (StateID, bool) {
	currID := region.ActiveStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx, region) {
				return trans.TargetID, true
			}
		}
		currID = node.ParentID
	}
	return StateNone, false
}

// transitionRegion performs state change within a specific region
// A transition to the active state is consumed without running exit or enter actions
func (m *Machine[T]) transitionRegion(ctx T, region *RegionState, targetID StateID) {
	if region.ActiveStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d in region '%s'", targetID, region.Name))
	}

	// Find LCA
	lcaIndex := -1
	currentPath := region.ActivePath
	targetPath := targetNode.Path

	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		if node, exists := m.nodes[currentPath[i]]; exists {
			runActions(ctx, node.OnExit)
		}
	}

	// Update region state before entering so enter actions observe the new state
	region.ActiveStateID = targetID
	region.ActivePath = append(region.ActivePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		if node, exists := m.nodes[targetPath[i]]; exists {
			runActions(ctx, node.OnEnter)
		}
	}
}

// GetRegionState returns current state name for a region
func (m *Machine[T]) GetRegionState(regionName string) string {
	if region, ok := m.regions[regionName]; ok {
		if node, ok := m.nodes[region.ActiveStateID]; ok {
			return node.Name
		}
	}
	return ""
}

// sortedKeys returns map keys in sorted order for deterministic region evaluation
func sortedKeys[V any](set map[string]V) []string {
	return slices.Sorted(maps.Keys(set))
}

func runActions[T any](ctx T, actions []ActionFunc[T]) {
	for _, action := range actions {
		action(ctx)
	}
}
