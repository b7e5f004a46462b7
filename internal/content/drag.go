package content

// DragPayload describes an in-flight content drag. It exists only for
// the duration of the gesture; dropping or cancelling discards it.
type DragPayload struct {
	SourceBlockID string   `json:"sourceBlockId"`
	Fragment      Fragment `json:"fragment"`
	SourcePos     int      `json:"sourcePos"` // node index inside the source block
	Size          int      `json:"size"`      // number of dragged nodes
}
