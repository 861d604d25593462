package models

// All lists every model for auto-migration, in creation order.
func All() []any {
	return []any{
		&UserModel{},
		&ClientModel{},
		&ApplianceModel{},
		&ServiceModel{},
		&StatusHistoryModel{},
		&SparePartOrderModel{},
		&RemovedPartModel{},
		&NotificationModel{},
		&OutboundMessageModel{},
	}
}
