package protocol

import (
	"math"
	"time"

	"playroom/domain"
)

// ValidateEnvelope checks the shape of a decoded JSON frame and, for kinds
// with a defined payload contract, the payload itself. It never stops at the
// first problem: every detected violation is appended so the sender gets a
// complete diagnostic. Unknown extra fields on any object are ignored.
func ValidateEnvelope(raw any) domain.Violations {
	var vs domain.Violations

	obj, ok := raw.(map[string]any)
	if !ok {
		vs.Add("envelope", "must be a JSON object")
		return vs
	}

	kind, _ := obj["type"].(string)
	if !IsKind(Kind(kind)) {
		vs.Add("type", "must be one of the supported message types")
	}

	payload, payloadIsObject := obj["payload"].(map[string]any)
	if v, present := obj["payload"]; !present || v == nil {
		vs.Add("payload", "is required")
	} else if !payloadIsObject {
		vs.Add("payload", "must be an object")
	}

	if userID, _ := obj["userId"].(string); !domain.IsIdentifier(userID) {
		vs.Add("userId", "must be a well-formed identifier")
	}

	ts, _ := obj["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		vs.Add("timestamp", "must be a valid ISO-8601 instant")
	}

	if v, present := obj["messageId"]; present && v != nil {
		if s, _ := v.(string); !domain.IsIdentifier(s) {
			vs.Add("messageId", "must be a well-formed identifier")
		}
	}

	if payloadIsObject {
		switch Kind(kind) {
		case KindChat:
			vs = append(vs, validateChatPayload(payload)...)
		case KindGameMove:
			vs = append(vs, validateMovePayload(payload)...)
		}
	}
	return vs
}

func validateChatPayload(p map[string]any) domain.Violations {
	var vs domain.Violations
	if content, _ := p["content"].(string); content == "" {
		vs.Add("payload.content", "must be a non-empty string")
	}
	if receiverID, _ := p["receiverId"].(string); !domain.IsIdentifier(receiverID) {
		vs.Add("payload.receiverId", "must be a well-formed identifier")
	}
	if kind, _ := p["messageKind"].(string); !domain.IsMessageKind(domain.MessageKind(kind)) {
		vs.Add("payload.messageKind", "must be one of text, image, system")
	}
	return vs
}

func validateMovePayload(p map[string]any) domain.Violations {
	var vs domain.Violations
	if sessionID, _ := p["sessionId"].(string); !domain.IsIdentifier(sessionID) {
		vs.Add("payload.sessionId", "must be a well-formed identifier")
	}
	if kind, _ := p["gameKind"].(string); !domain.IsGameKind(domain.GameKind(kind)) {
		vs.Add("payload.gameKind", "must be a supported game kind")
	}

	move, ok := p["moveData"].(map[string]any)
	if !ok {
		vs.Add("payload.moveData", "is required")
		return vs
	}
	// JSON numbers decode as float64; a board position must be integral.
	if pos, ok := move["position"].(float64); !ok || pos != math.Trunc(pos) || pos < 0 || pos > 8 {
		vs.Add("payload.moveData.position", "must be an integer between 0 and 8")
	}
	if player, _ := move["player"].(string); !domain.IsIdentifier(player) {
		vs.Add("payload.moveData.player", "must be a well-formed identifier")
	}
	if board, ok := move["boardState"].([]any); !ok || len(board) != domain.BoardCells {
		vs.Add("payload.moveData.boardState", "must have exactly 9 cells")
	}
	return vs
}
