package client

import (
	"fmt"
	"strings"
	"time"
)

// Appliance is a client's device brought in for repair.
type Appliance struct {
	id           uint
	clientID     uint
	deviceType   string
	manufacturer string
	model        string
	serialNumber string
	createdAt    time.Time
}

func NewAppliance(clientID uint, deviceType, manufacturer, model, serialNumber string) (*Appliance, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client_id: client ID is required")
	}
	deviceType = strings.TrimSpace(deviceType)
	if deviceType == "" {
		return nil, fmt.Errorf("device_type: device type is required")
	}
	return &Appliance{
		clientID:     clientID,
		deviceType:   deviceType,
		manufacturer: strings.TrimSpace(manufacturer),
		model:        strings.TrimSpace(model),
		serialNumber: strings.TrimSpace(serialNumber),
		createdAt:    time.Now().UTC(),
	}, nil
}

func ReconstructAppliance(id, clientID uint, deviceType, manufacturer, model, serialNumber string, createdAt time.Time) (*Appliance, error) {
	if id == 0 {
		return nil, fmt.Errorf("appliance ID cannot be zero")
	}
	return &Appliance{
		id:           id,
		clientID:     clientID,
		deviceType:   deviceType,
		manufacturer: manufacturer,
		model:        model,
		serialNumber: serialNumber,
		createdAt:    createdAt,
	}, nil
}

func (a *Appliance) ID() uint             { return a.id }
func (a *Appliance) ClientID() uint       { return a.clientID }
func (a *Appliance) DeviceType() string   { return a.deviceType }
func (a *Appliance) Manufacturer() string { return a.manufacturer }
func (a *Appliance) Model() string        { return a.model }
func (a *Appliance) SerialNumber() string { return a.serialNumber }
func (a *Appliance) CreatedAt() time.Time { return a.createdAt }

// Label is the short description used in messages, e.g. "Frizider Gorenje".
func (a *Appliance) Label() string {
	if a.manufacturer == "" {
		return a.deviceType
	}
	return a.deviceType + " " + a.manufacturer
}

func (a *Appliance) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("appliance ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("appliance ID cannot be zero")
	}
	a.id = id
	return nil
}
