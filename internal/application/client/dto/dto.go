package dto

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/client"
)

type ClientDTO struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplianceDTO struct {
	ID           uint      `json:"id"`
	ClientID     uint      `json:"client_id"`
	DeviceType   string    `json:"device_type"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Model        string    `json:"model,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToClientDTO(c *client.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:        c.ID(),
		FullName:  c.FullName(),
		Phone:     c.Phone(),
		Email:     c.Email(),
		Address:   c.Address(),
		City:      c.City(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToClientDTOs(clients []*client.Client) []*ClientDTO {
	out := make([]*ClientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, ToClientDTO(c))
	}
	return out
}

func ToApplianceDTO(a *client.Appliance) *ApplianceDTO {
	if a == nil {
		return nil
	}
	return &ApplianceDTO{
		ID:           a.ID(),
		ClientID:     a.ClientID(),
		DeviceType:   a.DeviceType(),
		Manufacturer: a.Manufacturer(),
		Model:        a.Model(),
		SerialNumber: a.SerialNumber(),
		CreatedAt:    a.CreatedAt(),
	}
}

func ToApplianceDTOs(appliances []*client.Appliance) []*ApplianceDTO {
	out := make([]*ApplianceDTO, 0, len(appliances))
	for _, a := range appliances {
		out = append(out, ToApplianceDTO(a))
	}
	return out
}
