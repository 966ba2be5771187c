package schema

// Fields maps extracted field names to their values. Single-valued fields
// hold exactly one entry; multi-valued fields accumulate in insertion order
// with duplicates suppressed. Values are never cleared outside a full reset.
type Fields map[string][]string

// Set replaces the value of a single-valued field. Later calls win.
func (f Fields) Set(name, value string) {
	if name == "" || value == "" {
		return
	}
	f[name] = []string{value}
}

// Add appends a value to a multi-valued field, preserving insertion order
// and dropping duplicates.
func (f Fields) Add(name, value string) {
	if name == "" || value == "" {
		return
	}
	for _, v := range f[name] {
		if v == value {
			return
		}
	}
	f[name] = append(f[name], value)
}

// Get returns the first value of a field, or "" when unset.
func (f Fields) Get(name string) string {
	if vs := f[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// All returns every value recorded under a field.
func (f Fields) All(name string) []string {
	return f[name]
}

// Has reports whether a field holds at least one value.
func (f Fields) Has(name string) bool {
	return len(f[name]) > 0
}

func (f Fields) Clone() Fields {
	cp := make(Fields, len(f))
	for k, vs := range f {
		c := make([]string, len(vs))
		copy(c, vs)
		cp[k] = c
	}
	return cp
}
