package server

import (
	"encoding/json"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

// MessageType names a frame on the wire
type MessageType string

const (
	MessageTypeGenerate MessageType = "generate"
	MessageTypeLoad     MessageType = "load"
	MessageTypeSave     MessageType = "save"
	MessageTypeList     MessageType = "list"
	MessageTypeFloor    MessageType = "floor"
	MessageTypeSaved    MessageType = "saved"
	MessageTypeFloors   MessageType = "floors"
	MessageTypeError    MessageType = "error"
)

// Error codes carried by error frames
const (
	CodeGenerationFailed  = 1
	CodeInvalidParameters = 2
	CodeStorage           = 3
	CodeBadRequest        = 4
)

// InboundMessage is a client frame. Payload is decoded per Type.
type InboundMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// OutboundMessage is a server frame
type OutboundMessage struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// GenerateMessage requests a new floor. A missing seed draws one from the
// clock.
type GenerateMessage struct {
	Seed      *uint16 `json:"seed,omitempty"`
	Size      int     `json:"size"`
	Hidden    int     `json:"hidden"`
	Niches    int     `json:"niches"`
	Deception int     `json:"deception"`
}

// NameMessage carries the archive name for load and save
type NameMessage struct {
	Name string `json:"name"`
}

// FloorMessage describes a generated floor. Packed is the base64 packed
// 3-bit tile buffer.
type FloorMessage struct {
	Name        string           `json:"name,omitempty"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Seed        uint16           `json:"seed"`
	Packed      []byte           `json:"packed"`
	Rooms       []generator.Room `json:"rooms"`
	Up          world.Point      `json:"up"`
	Down        world.Point      `json:"down"`
	SecretDoors []world.Point    `json:"secret_doors"`
}

// FloorsMessage lists archived floor names
type FloorsMessage struct {
	Names []string `json:"names"`
}

// ErrorMessage reports a failed request
type ErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewFloorMessage describes f
func NewFloorMessage(name string, f *generator.Floor) FloorMessage {
	up, down := f.Stairs()
	return FloorMessage{
		Name:        name,
		Width:       f.Width(),
		Height:      f.Height(),
		Seed:        f.Seed(),
		Packed:      f.Packed(),
		Rooms:       f.Rooms(),
		Up:          up,
		Down:        down,
		SecretDoors: f.SecretDoors(),
	}
}
