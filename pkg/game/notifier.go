package game

// Notifier shows a short message to a user
// Delivery is fire-and-forget, implementations must not block
type Notifier interface {
	Notify(userID string, message string)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(userID string, message string)

// Notify calls fn
func (fn NotifierFunc) Notify(userID string, message string) {
	fn(userID, message)
}

// NopNotifier discards every message
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(string, string) {}
