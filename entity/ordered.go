package entity

// Ordered is a string keyed map that remembers the order in which keys were first set.
type Ordered[V any] struct {
	keys []string
	m    map[string]V
}

func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{m: make(map[string]V)}
}

// Set stores v under k. Overwriting an existing key keeps its original position.
func (o *Ordered[V]) Set(k string, v V) {
	if _, ok := o.m[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.m[k] = v
}

func (o *Ordered[V]) Get(k string) (V, bool) {
	v, ok := o.m[k]
	return v, ok
}

func (o *Ordered[V]) Keys() []string {
	rs := make([]string, len(o.keys))
	copy(rs, o.keys)
	return rs
}

func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (o *Ordered[V]) Range(fn func(k string, v V) bool) {
	for _, k := range o.keys {
		if !fn(k, o.m[k]) {
			return
		}
	}
}

// Map returns an unordered copy, handy for comparisons.
func (o *Ordered[V]) Map() map[string]V {
	rs := make(map[string]V, len(o.m))
	for k, v := range o.m {
		rs[k] = v
	}
	return rs
}
