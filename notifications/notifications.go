// Package notifications defines the notification service interface used to
// deliver messages to users.
package notifications

import "context"

// Notification is a message to be delivered to a user.
type Notification struct {
	ToName    string
	ToAddress string
	Subject   string
	Body      string
	PlainBody string
}

// NotificationService is implemented by every notification transport.
type NotificationService interface {
	New(conf any) error
	SendNotification(context.Context, *Notification) error
}
