package core

// BoundingRecter is implemented by anything that occupies a rectangle on
// screen, typically the element hosting the render surface.
type BoundingRecter interface {
	BoundingClientRect() BoundingRect
}

// PointerEvent is a click or tap delivered by a host.
// ClientX and ClientY are device-space coordinates; Target is the element
// the event was dispatched to.
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Target  BoundingRecter
}

// PointerEventAt is a convenience constructor used by hosts.
func PointerEventAt(x, y float64, target BoundingRecter) PointerEvent {
	return PointerEvent{ClientX: x, ClientY: y, Target: target}
}
