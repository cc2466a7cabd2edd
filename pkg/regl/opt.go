package regl

// Opt is an optional value. The zero value is unset.
type Opt[T any] struct {
	v   T
	set bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{v: v, set: true}
}

// None returns an unset Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it was set.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.set
}

// IsSet reports whether the value was set.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Or returns the value if set, otherwise def.
func (o Opt[T]) Or(def T) T {
	if o.set {
		return o.v
	}
	return def
}
