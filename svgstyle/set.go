package svgstyle

// PropertySet is an ordered map from properties to values.
// The zero value is an empty set, ready to use.
type PropertySet struct {
	order  []Property
	values map[Property]Value
}

// Set adds or overwrites the value of `p`. An overwritten
// property keeps its original position.
func (ps *PropertySet) Set(p Property, v Value) {
	if ps.values == nil {
		ps.values = make(map[Property]Value)
	}
	if _, has := ps.values[p]; !has {
		ps.order = append(ps.order, p)
	}
	ps.values[p] = v
}

// Get returns the value of `p`, if set.
func (ps PropertySet) Get(p Property) (Value, bool) {
	v, ok := ps.values[p]
	return v, ok
}

// Delete removes `p` from the set.
func (ps *PropertySet) Delete(p Property) {
	if _, has := ps.values[p]; !has {
		return
	}
	delete(ps.values, p)
	for i, o := range ps.order {
		if o == p {
			ps.order = append(ps.order[:i:i], ps.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of properties set.
func (ps PropertySet) Len() int { return len(ps.order) }

// Properties returns the properties set, in insertion order.
func (ps PropertySet) Properties() []Property {
	return append([]Property(nil), ps.order...)
}

// Merge sets every property of `other`, overwriting
// the existing values.
func (ps *PropertySet) Merge(other PropertySet) {
	for _, p := range other.order {
		ps.Set(p, other.values[p])
	}
}

// Clone returns a copy of the set, which may be modified
// without affecting `ps`.
func (ps PropertySet) Clone() PropertySet {
	var out PropertySet
	out.Merge(ps)
	return out
}
