package descriptioncmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	parseDescriptionMessageType  = "vdesc.description.parse"
	renderDescriptionMessageType = "vdesc.description.render"
)

// MaxPayloadLength caps the payload size, in runes, accepted by commands.
const MaxPayloadLength = 1 << 20

// ParseDescriptionCommand parses one vehicle description payload and hands
// the document to the configured sink. An empty payload is accepted and
// yields a nil document.
type ParseDescriptionCommand struct {
	// VehicleID identifies the vehicle the description belongs to.
	VehicleID uuid.UUID `json:"vehicle_id"`
	// Payload is the raw description, plain or base64 encoded.
	Payload string `json:"payload"`
	// Source names where the payload came from (file, feed, record id).
	Source string `json:"source,omitempty"`
}

// Type implements command.Message.
func (ParseDescriptionCommand) Type() string { return parseDescriptionMessageType }

// Validate ensures the vehicle reference is present and the payload bounded.
func (cmd ParseDescriptionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.VehicleID, validation.By(requireVehicleID(parseDescriptionMessageType))),
		validation.Field(&cmd.Payload, validation.RuneLength(0, MaxPayloadLength)),
		validation.Field(&cmd.Source, validation.Length(0, 512)),
	)
}

// RenderDescriptionCommand parses a payload and renders the HTML preview
// alongside the document.
type RenderDescriptionCommand struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	Payload   string    `json:"payload"`
	Source    string    `json:"source,omitempty"`
}

// Type implements command.Message.
func (RenderDescriptionCommand) Type() string { return renderDescriptionMessageType }

// Validate mirrors ParseDescriptionCommand.Validate.
func (cmd RenderDescriptionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.VehicleID, validation.By(requireVehicleID(renderDescriptionMessageType))),
		validation.Field(&cmd.Payload, validation.RuneLength(0, MaxPayloadLength)),
		validation.Field(&cmd.Source, validation.Length(0, 512)),
	)
}

func requireVehicleID(messageType string) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError(messageType+".vehicle_id_required", "vehicle id is required")
		}
		return nil
	}
}
