package valueobjects

// NotificationType classifies dashboard notices and selects their message template.
type NotificationType string

const (
	TypeSparePartRequested   NotificationType = "spare_part_requested"
	TypeSparePartUpdated     NotificationType = "spare_part_updated"
	TypeSparePartDelivered   NotificationType = "spare_part_delivered"
	TypeServiceStatusChanged NotificationType = "service_status_changed"
	TypePartsRemoved         NotificationType = "parts_removed"
	TypePartsReturned        NotificationType = "parts_returned"
	TypeServiceCompleted     NotificationType = "service_completed"
	TypeAppointmentReminder  NotificationType = "appointment_reminder"
)

// NotificationTypes lists every known type in declaration order.
func NotificationTypes() []NotificationType {
	return []NotificationType{
		TypeSparePartRequested, TypeSparePartUpdated, TypeSparePartDelivered,
		TypeServiceStatusChanged, TypePartsRemoved, TypePartsReturned,
		TypeServiceCompleted, TypeAppointmentReminder,
	}
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	switch t {
	case TypeSparePartRequested, TypeSparePartUpdated, TypeSparePartDelivered,
		TypeServiceStatusChanged, TypePartsRemoved, TypePartsReturned,
		TypeServiceCompleted, TypeAppointmentReminder:
		return true
	}
	return false
}

// IsClientFacing reports whether the client is told about this kind of notice.
func (t NotificationType) IsClientFacing() bool {
	switch t {
	case TypeServiceCompleted, TypeSparePartDelivered, TypeAppointmentReminder:
		return true
	}
	return false
}

// Channel is an outbound transport.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelWhatsApp || c == ChannelEmail
}

// DeliveryStatus tracks a single outbound message.
type DeliveryStatus string

const (
	DeliveryQueued  DeliveryStatus = "queued"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliverySkipped DeliveryStatus = "skipped"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryQueued, DeliverySent, DeliveryFailed, DeliverySkipped:
		return true
	}
	return false
}
