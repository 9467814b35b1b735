package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is advertised by servers in Welcome.
const ProtocolVersion uint8 = 1

type MessageKind uint8

const (
	KindUnknown MessageKind = iota
	KindHello
	KindWelcome
)

func (k MessageKind) String() string {
	switch k {
	case KindHello:
		return "Hello"
	case KindWelcome:
		return "Welcome"
	default:
		return "Unknown"
	}
}

// Welcome is the payload of the server's reply to Hello.
type Welcome struct {
	Version uint8 `json:"version" cramberry:"1"`
}

// Message is the handshake exchanged before any challenge: Hello from the
// client, Welcome{version} from the server. Welcome is set only when Kind is
// KindWelcome.
//
// The JSON form is "Hello" or {"Welcome":{"version":N}}.
type Message struct {
	Kind    MessageKind `json:"-" cramberry:"1"`
	Welcome *Welcome    `json:"-" cramberry:"2"`
}

func NewHello() Message { return Message{Kind: KindHello} }

func NewWelcome(version uint8) Message {
	return Message{Kind: KindWelcome, Welcome: &Welcome{Version: version}}
}

func (m Message) IsHello() bool { return m.Kind == KindHello }

// Version returns the advertised protocol version and whether m is a Welcome.
func (m Message) Version() (uint8, bool) {
	if m.Kind != KindWelcome || m.Welcome == nil {
		return 0, false
	}
	return m.Welcome.Version, true
}

var errUnknownMessage = errors.New("unknown handshake message")

func (m Message) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case KindHello:
		return []byte(`"Hello"`), nil
	case KindWelcome:
		if m.Welcome == nil {
			return nil, fmt.Errorf("%w: welcome without payload", errUnknownMessage)
		}
		return json.Marshal(map[string]Welcome{"Welcome": *m.Welcome})
	default:
		return nil, errUnknownMessage
	}
}

func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		if tag != "Hello" {
			return fmt.Errorf("%w: %q", errUnknownMessage, tag)
		}
		*m = NewHello()
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	raw, ok := obj["Welcome"]
	if !ok || len(obj) != 1 {
		return errUnknownMessage
	}
	var w Welcome
	if err := json.Unmarshal(raw, &w); err != nil {
		return fmt.Errorf("welcome payload: %w", err)
	}
	*m = NewWelcome(w.Version)
	return nil
}
