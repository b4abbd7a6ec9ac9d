package snowflake

import "github.com/bwmarrin/snowflake"

// Generator hands out snowflake IDs for transient objects such as toast
// notifications.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node ID (0-1023).
func New(nodeID int64) (*Generator, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: n}, nil
}

// NextID generates a new unique snowflake ID.
func (g *Generator) NextID() int64 {
	return g.node.Generate().Int64()
}

// Next generates a new unique snowflake ID in its base-10 string form.
func (g *Generator) Next() string {
	return g.node.Generate().String()
}
