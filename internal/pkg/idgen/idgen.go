// Package idgen hands out int64 identifiers for products and customer entries.
//
// Identifiers are snowflake ids: the high bits are milliseconds since the
// snowflake epoch, so ids remain ordered by creation time, and the sequence
// bits keep two ids minted within the same millisecond distinct.
package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator produces unique identifiers.
type Generator interface {
	NextID() int64
}

// Snowflake is a Generator backed by a single snowflake node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for the given node number (0-1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

// NextID returns the next identifier.
func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// Sequence is a deterministic Generator for tests.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

// NewSequence creates a Sequence whose first id is start.
func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

// NextID returns the next identifier in the sequence.
func (s *Sequence) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	return id
}
