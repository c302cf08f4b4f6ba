package variants

// Objects and actions carried by outbound commit notifications.
const (
	ObjectProduct = "product"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notifier publishes outbound change notifications for objects the
// connector mutates. WithSuppressed runs fn with notifications muted so
// the connector's own nested writes (lazy base-product creation in
// particular) do not re-trigger outbound events for the request that is
// already in flight. Suppression must clear on every exit path,
// including panics.
type Notifier interface {
	Notify(object, id, action string)
	WithSuppressed(fn func() error) error
}

// NopNotifier drops all notifications. Used when no outbound transport
// is wired, and as the base of test recorders.
type NopNotifier struct{}

func (NopNotifier) Notify(object, id, action string) {}

func (NopNotifier) WithSuppressed(fn func() error) error { return fn() }
