package subscriber

import (
	"reflect"
	"weak"
)

// Subscriber receives notifications of type T.
type Subscriber[T any] interface {
	// Notify is called once per delivery. value is only valid for the
	// duration of the call and must not be modified.
	Notify(value *T)
}

// WeakRef is a non-owning reference to a Subscriber.
// The zero value is a reference that is always expired.
type WeakRef[T any] struct {
	upgrade func() Subscriber[T]
}

// Downgrade returns a weak reference to the subscriber p points to.
// The type argument T usually has to be given explicitly:
//
//	ref := subscriber.Downgrade[Event](handler)
//
// A nil p yields an expired reference.
func Downgrade[T any, S any, P interface {
	*S
	Subscriber[T]
}](p P) WeakRef[T] {
	wp := weak.Make((*S)(p))
	return WeakRef[T]{
		upgrade: func() Subscriber[T] {
			s := wp.Value()
			if s == nil {
				return nil
			}
			return P(s)
		},
	}
}

// Upgrade returns a strong reference to the subscriber, or nil if it has
// been reclaimed. Callers should not retain the result longer than needed.
func (r WeakRef[T]) Upgrade() Subscriber[T] {
	if r.upgrade == nil {
		return nil
	}
	return r.upgrade()
}

// Expired reports whether the referenced subscriber has been reclaimed.
func (r WeakRef[T]) Expired() bool {
	return r.Upgrade() == nil
}

// addressOf returns the address of the object behind a pointer-shaped
// subscriber, or 0 when s has no address identity. The dynamic type of s
// is ignored.
func addressOf(s any) uintptr {
	if s == nil {
		return 0
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return v.Pointer()
	default:
		return 0
	}
}

// SameSubscriber reports whether a and b refer to the same object.
func SameSubscriber[T any](a, b Subscriber[T]) bool {
	addr := addressOf(a)
	return addr != 0 && addr == addressOf(b)
}
