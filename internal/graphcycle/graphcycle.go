// Package graphcycle provides generic cycle detection over directed
// reference graphs (type derivation chains, substitution group links).
package graphcycle

import "fmt"

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// MissingPolicy controls behavior when a referenced node is missing.
type MissingPolicy uint8

const (
	MissingPolicyIgnore MissingPolicy = iota
	MissingPolicyError
)

// CycleError reports a cycle at Key. Chain holds the participating nodes in
// traversal order, starting and ending at Key.
type CycleError[K comparable] struct {
	Key   K
	Chain []K
}

// Error returns the error string.
func (e CycleError[K]) Error() string {
	return fmt.Sprintf("cycle detected at %v", e.Key)
}

// MissingError reports a referenced node absent from the graph.
type MissingError[K comparable] struct {
	From K
	Key  K
}

// Error returns the error string.
func (e MissingError[K]) Error() string {
	return fmt.Sprintf("missing node %v referenced from %v", e.Key, e.From)
}

// Config configures generic cycle detection traversal.
type Config[K comparable] struct {
	Exists  func(K) bool
	Next    func(K) ([]K, error)
	Starts  []K
	Missing MissingPolicy
}

// Detect walks directed edges from Starts and reports the first cycle or
// traversal error. The reported cycle chain is trimmed to the nodes that
// actually participate in the cycle.
func Detect[K comparable](cfg Config[K]) error {
	if cfg.Next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(cfg.Starts))
	var path []K

	var zero K
	var visit func(key, from K, hasFrom bool) error
	visit = func(key, from K, hasFrom bool) error {
		switch states[key] {
		case stateVisiting:
			return CycleError[K]{Key: key, Chain: chainFrom(path, key)}
		case stateDone:
			return nil
		}

		exists := true
		if cfg.Exists != nil {
			exists = cfg.Exists(key)
		}
		if !exists {
			if cfg.Missing == MissingPolicyIgnore {
				return nil
			}
			if !hasFrom {
				from = zero
			}
			return MissingError[K]{From: from, Key: key}
		}

		states[key] = stateVisiting
		path = append(path, key)
		neighbors, err := cfg.Next(key)
		if err != nil {
			return err
		}
		for _, next := range neighbors {
			if err := visit(next, key, true); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		states[key] = stateDone
		return nil
	}

	for _, start := range cfg.Starts {
		if err := visit(start, zero, false); err != nil {
			return err
		}
	}

	return nil
}

// chainFrom extracts the cycle participants from the traversal path: the
// suffix beginning at key, closed by repeating key.
func chainFrom[K comparable](path []K, key K) []K {
	start := 0
	for i, node := range path {
		if node == key {
			start = i
			break
		}
	}
	chain := make([]K, 0, len(path)-start+1)
	chain = append(chain, path[start:]...)
	chain = append(chain, key)
	return chain
}
