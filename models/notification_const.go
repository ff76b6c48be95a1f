package models

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending" // ожидает отправки
	DeliverySent    DeliveryStatus = "sent"    // письмо отправлено
	DeliveryFailed  DeliveryStatus = "failed"  // ошибка отправки, будет повтор
)
