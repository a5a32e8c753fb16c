package nwb

import "fmt"

// Placeholder is the text marker for a field that is not present. Readers map
// it to an unset Optional and writers never persist it.
const Placeholder = "PLACEHOLDER"

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if !o.set {
		return def
	}
	return o.value
}

// String formats the value, or Placeholder when absent.
func (o Optional[T]) String() string {
	if !o.set {
		return Placeholder
	}
	return fmt.Sprint(o.value)
}

// textField maps the placeholder marker to an absent value.
func textField(s string) Optional[string] {
	if s == Placeholder {
		return None[string]()
	}
	return Some(s)
}
