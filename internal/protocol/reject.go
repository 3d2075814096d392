package protocol

// Reject reasons returned in CommandReject.Reason. Clients treat unknown
// reasons as non-retryable.
const (
	RejectMalformed    = "malformed_payload"
	RejectSchema       = "schema_violation"
	RejectUnknownType  = "unknown_command"
	RejectMissingField = "missing_field"
	RejectUnknownActor = "unknown_actor"
	RejectUnknownTile  = "unknown_tile"
	RejectInvalidState = "invalid_state"
)

var knownRejectReasons = map[string]struct{}{
	RejectMalformed:    {},
	RejectSchema:       {},
	RejectUnknownType:  {},
	RejectMissingField: {},
	RejectUnknownActor: {},
	RejectUnknownTile:  {},
	RejectInvalidState: {},
}

// KnownRejectReason reports whether the reason is one the server emits.
func KnownRejectReason(reason string) bool {
	_, ok := knownRejectReasons[reason]
	return ok
}
