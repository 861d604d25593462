package client

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameCaser = cases.Title(language.Serbian)

// Client is a customer of the repair shop.
type Client struct {
	id        uint
	fullName  string
	phone     string
	email     string
	address   string
	city      string
	createdAt time.Time
}

func NewClient(fullName, phone, email, address, city string) (*Client, error) {
	fullName = strings.Join(strings.Fields(fullName), " ")
	if fullName == "" {
		return nil, fmt.Errorf("full_name: full name is required")
	}
	if len(fullName) > 200 {
		return nil, fmt.Errorf("full_name: full name exceeds 200 characters")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone: phone is required")
	}

	return &Client{
		fullName:  nameCaser.String(fullName),
		phone:     phone,
		email:     strings.ToLower(strings.TrimSpace(email)),
		address:   strings.TrimSpace(address),
		city:      strings.TrimSpace(city),
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructClient(id uint, fullName, phone, email, address, city string, createdAt time.Time) (*Client, error) {
	if id == 0 {
		return nil, fmt.Errorf("client ID cannot be zero")
	}
	return &Client{
		id:        id,
		fullName:  fullName,
		phone:     phone,
		email:     email,
		address:   address,
		city:      city,
		createdAt: createdAt,
	}, nil
}

func (c *Client) ID() uint             { return c.id }
func (c *Client) FullName() string     { return c.fullName }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Email() string        { return c.email }
func (c *Client) Address() string      { return c.address }
func (c *Client) City() string         { return c.city }
func (c *Client) CreatedAt() time.Time { return c.createdAt }

func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = id
	return nil
}
