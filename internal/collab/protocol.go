package collab

import "encoding/json"

type Message struct {
	Type      string          `json:"type"`
	DrawingID string          `json:"drawingId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *CursorPos  `json:"cursor,omitempty"`
	Selection   []string    `json:"selection,omitempty"`
	ActiveDrag  *VertexDrag `json:"activeDrag,omitempty"`
	DisplayName string      `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VertexDrag marks the vertex a user is currently dragging, so other
// editors can highlight the matching control.
type VertexDrag struct {
	ShapeID string `json:"shapeId"`
	Vertex  int    `json:"vertex"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation types understood by DocumentState.
const (
	OpShapeCreate   = "shape.create"
	OpShapeDelete   = "shape.delete"
	OpShapeStyle    = "shape.style"
	OpShapePoints   = "shape.points"
	OpShapeDragNode = "shape.point.drag"
	OpCanvasUpdate  = "canvas.update"
	OpDrawingRename = "drawing.rename"
)

// Operation represents a document mutation
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`
	ShapeID   string `json:"shapeId,omitempty"`

	// For shape.create
	Shape json.RawMessage `json:"shape,omitempty"`
	Index *int            `json:"index,omitempty"`

	// For shape.style
	Style json.RawMessage `json:"style,omitempty"`

	// For shape.points
	Points json.RawMessage `json:"points,omitempty"`

	// For shape.point.drag
	Drag *DragPayload `json:"drag,omitempty"`

	// For canvas.update
	Changes json.RawMessage `json:"changes,omitempty"`

	// For drawing.rename
	Name         string `json:"name,omitempty"`
	PreviousName string `json:"previousName,omitempty"`
}

// DragPayload carries one pointer-move step of a vertex drag. X and Y
// are the pointer position in world coordinates.
type DragPayload struct {
	Vertex int     `json:"vertex"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// OperationSubmitPayload is the payload for op.submit messages
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// DocSyncPayload carries the full document on join.
type DocSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
