package ops

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Operation{}
)

func init() {
	for _, op := range []Operation{AddOp{}, SubOp{}, MulOp{}, DivOp{}, LogOp{}, SinOp{}, CosOp{}, ExpOp{}} {
		registry[op.Name()] = op
	}
}

// Register adds a primitive to the registry so it can be resolved by name
// (e.g., from an expression). It fails if the name is empty, reserved, or
// already taken.
func Register(op Operation) error {
	if op == nil {
		return errors.New("ops: nil operation")
	}
	name := op.Name()
	if name == "" || name == "input" {
		return fmt.Errorf("ops: invalid operation name %q", name)
	}
	if op.Arity() < 1 {
		return fmt.Errorf("ops: operation %q must take at least one operand", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("ops: operation %q already registered", name)
	}
	registry[name] = op
	return nil
}

// Lookup returns the primitive registered under name.
func Lookup(name string) (Operation, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[name]
	return op, ok
}

// Names returns the registered operation names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
