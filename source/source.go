// Package source holds the raw value tree produced by the description
// readers. Objects keep key insertion order and numbers keep their source
// text, so downstream code can reproduce both verbatim.
package source

// Number is a numeric literal kept exactly as written in the input.
type Number string

func (n Number) String() string { return string(n) }

// Object is a decoded mapping that keeps key insertion order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object { return &Object{values: map[string]any{}} }

// Set appends key with value v. It returns false, leaving the object
// unchanged, when key is already present.
func (o *Object) Set(key string, v any) bool {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, dup := o.values[key]; dup {
		return false
	}
	o.keys = append(o.keys, key)
	o.values[key] = v
	return true
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}
