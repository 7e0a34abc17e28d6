package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when a frame is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrInvalidEnvelope is returned when a frame is valid JSON but not a
	// gateway envelope (not an object, or op missing or not a number).
	ErrInvalidEnvelope = errors.New("invalid gateway envelope")
)

// Opcode is a gateway payload opcode.
type Opcode int

const (
	OpDispatch            Opcode = 0
	OpHeartbeat           Opcode = 1
	OpIdentify            Opcode = 2
	OpPresenceUpdate      Opcode = 3
	OpVoiceStateUpdate    Opcode = 4
	OpResume              Opcode = 6
	OpReconnect           Opcode = 7
	OpRequestGuildMembers Opcode = 8
	OpInvalidSession      Opcode = 9
	OpHello               Opcode = 10
	OpHeartbeatACK        Opcode = 11
)

func (o Opcode) String() string {
	switch o {
	case OpDispatch:
		return "DISPATCH"
	case OpHeartbeat:
		return "HEARTBEAT"
	case OpIdentify:
		return "IDENTIFY"
	case OpPresenceUpdate:
		return "PRESENCE_UPDATE"
	case OpVoiceStateUpdate:
		return "VOICE_STATE_UPDATE"
	case OpResume:
		return "RESUME"
	case OpReconnect:
		return "RECONNECT"
	case OpRequestGuildMembers:
		return "REQUEST_GUILD_MEMBERS"
	case OpInvalidSession:
		return "INVALID_SESSION"
	case OpHello:
		return "HELLO"
	case OpHeartbeatACK:
		return "HEARTBEAT_ACK"
	default:
		return "OP(" + strconv.Itoa(int(o)) + ")"
	}
}

// Envelope is the generic gateway frame. Sequence and Type are nil when the
// frame omits them or sends null.
type Envelope struct {
	Op       Opcode          `json:"op"`
	Sequence *int64          `json:"s"`
	Type     *string         `json:"t"`
	Data     json.RawMessage `json:"d"`
}

// Event is a decoded dispatch frame. The payload is kept as raw JSON; each
// handler decodes it into the type it declared.
//
// One Event is shared by every handler invoked for the frame and must be
// treated as read-only.
type Event struct {
	// ID correlates log lines for one dispatch.
	ID       string
	Kind     Kind
	Sequence int64
	Payload  json.RawMessage
}

// ParseEnvelope extracts the envelope fields from a raw frame using gjson,
// without decoding the payload.
func ParseEnvelope(raw []byte) (Envelope, error) {
	if !gjson.ValidBytes(raw) {
		return Envelope{}, ErrInvalidJSON
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return Envelope{}, fmt.Errorf("%w: frame is not an object", ErrInvalidEnvelope)
	}

	fields := gjson.GetManyBytes(raw, "op", "s", "t", "d")
	op, s, t, d := fields[0], fields[1], fields[2], fields[3]

	if op.Type != gjson.Number {
		return Envelope{}, fmt.Errorf("%w: missing or non-numeric op", ErrInvalidEnvelope)
	}
	env := Envelope{Op: Opcode(op.Int())}

	switch s.Type {
	case gjson.Null:
	case gjson.Number:
		seq := s.Int()
		env.Sequence = &seq
	default:
		return Envelope{}, fmt.Errorf("%w: non-numeric s", ErrInvalidEnvelope)
	}

	switch t.Type {
	case gjson.Null:
	case gjson.String:
		name := t.String()
		env.Type = &name
	default:
		return Envelope{}, fmt.Errorf("%w: non-string t", ErrInvalidEnvelope)
	}

	if d.Exists() {
		env.Data = json.RawMessage(d.Raw)
	}
	return env, nil
}

// Decode narrows an envelope to a dispatch Event. It reports false for
// non-dispatch opcodes, for frames without an event name, and for event
// names outside the known set. None of these are errors.
func Decode(env Envelope) (*Event, bool) {
	if env.Op != OpDispatch || env.Type == nil {
		return nil, false
	}
	kind, ok := ParseKind(*env.Type)
	if !ok {
		return nil, false
	}

	var seq int64
	if env.Sequence != nil {
		seq = *env.Sequence
	}
	return &Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		Sequence: seq,
		Payload:  env.Data,
	}, true
}
