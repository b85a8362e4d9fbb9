package domain

type NodeKind string

const (
	NodeComponent NodeKind = "COMPONENT"
	NodeExternal  NodeKind = "EXTERNAL"
)

type EdgeKind string

const (
	EdgeDependsOn EdgeKind = "DEPENDS_ON"
	EdgeConsumes  EdgeKind = "CONSUMES"
)

type Node struct {
	ID        string   `json:"id"`
	Kind      NodeKind `json:"kind"`
	Requested bool     `json:"requested,omitempty"`
}

type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Graph is a dependency diagram around a set of requested components
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}
