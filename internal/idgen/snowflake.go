package idgen

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init sets up the surrogate-id generator for this instance.
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("snowflake init failed: %v", err)
	}
	node = n
}

// New generates a fresh surrogate id.
func New() uint64 {
	if node == nil {
		log.Panic("[FATAL] idgen not initialized")
	}
	return uint64(node.Generate().Int64())
}
