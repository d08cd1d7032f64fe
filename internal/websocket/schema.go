package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventBoard Event = "board"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// BoardUpdate relays one ledger change to the front-desk display.
type BoardUpdate struct {
	Event          Event  `json:"event"`
	Type           string `json:"type"`
	ClassID        int    `json:"class_id"`
	MemberID       int    `json:"member_id"`
	OccurrenceDate string `json:"occurrence_date"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
