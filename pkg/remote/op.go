package remote

// NodeID identifies one client-side node. The client mirrors the id
// space; id 0 is the mount container.
type NodeID uint32

// RootID is the client's mount container.
const RootID NodeID = 0

// OpKind names one host mutation in the wire vocabulary.
type OpKind string

const (
	OpCreateElement OpKind = "createElement"
	OpCreateText    OpKind = "createText"
	OpSetText       OpKind = "setText"
	OpSetAttr       OpKind = "setAttr"
	OpRemoveAttr    OpKind = "removeAttr"
	OpSetProp       OpKind = "setProp"
	OpRemoveProp    OpKind = "removeProp"
	OpSetStyle      OpKind = "setStyle"
	OpRemoveStyle   OpKind = "removeStyle"
	OpListen        OpKind = "listen"
	OpUnlisten      OpKind = "unlisten"
	OpAppend        OpKind = "append"
	OpInsertBefore  OpKind = "insertBefore"
	OpRemoveChild   OpKind = "removeChild"
	OpClear         OpKind = "clear"
)

// Op is one host mutation on the wire. Unused fields are omitted.
type Op struct {
	Op     OpKind `json:"op"`
	ID     NodeID `json:"id"`
	Parent NodeID `json:"parent,omitempty"`
	Anchor NodeID `json:"anchor,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  any    `json:"value,omitempty"`
	Text   string `json:"text,omitempty"`
	Event  string `json:"event,omitempty"`
}

// OpsFrame is a server-to-client batch of ops committed by one turn
// batch. Seq increases by one per frame so the client can detect gaps.
type OpsFrame struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	Ops  []Op   `json:"ops"`
}

// EventFrame is a client-to-server native event on a listening node.
type EventFrame struct {
	Type    string `json:"type"`
	ID      NodeID `json:"id"`
	Event   string `json:"event"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Key     string `json:"key,omitempty"`
}
