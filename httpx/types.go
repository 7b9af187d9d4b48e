package httpx

import (
	"slices"
	"strings"

	"dqx0.com/go/fedora/httpx/internal/http1"
)

// Header holds decoded request headers, one value per key. Keys keep the
// case the client sent; Get is an exact lookup and GetFold ignores case.
type Header map[string]string

// Get returns the value stored under exactly key.
func (h Header) Get(key string) string {
	return h[key]
}

// Lookup is Get with a presence flag.
func (h Header) Lookup(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}

// GetFold returns the value whose key matches key ignoring ASCII case.
func (h Header) GetFold(key string) string {
	v, _ := http1.LookupFold(h, key)
	return v
}

// Fields is an insertion-ordered set of response headers. The zero value
// is ready to use. Setting an existing key replaces its value in place.
type Fields struct {
	list []http1.Field
}

// Set stores value under key. Keys are compared exactly.
func (f *Fields) Set(key, value string) {
	for i := range f.list {
		if f.list[i].Name == key {
			f.list[i].Value = value
			return
		}
	}
	f.list = append(f.list, http1.Field{Name: key, Value: value})
}

func (f *Fields) Get(key string) string {
	v, _ := f.Lookup(key)
	return v
}

func (f *Fields) Lookup(key string) (string, bool) {
	for _, fl := range f.list {
		if fl.Name == key {
			return fl.Value, true
		}
	}
	return "", false
}

// Has reports whether a key matching key ignoring case is present.
func (f *Fields) Has(key string) bool {
	for _, fl := range f.list {
		if strings.EqualFold(fl.Name, key) {
			return true
		}
	}
	return false
}

func (f *Fields) Del(key string) {
	for i := range f.list {
		if f.list[i].Name == key {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return
		}
	}
}

// DelFold removes every key matching key ignoring case.
func (f *Fields) DelFold(key string) {
	f.list = slices.DeleteFunc(f.list, func(fl http1.Field) bool {
		return strings.EqualFold(fl.Name, key)
	})
}

func (f *Fields) Len() int { return len(f.list) }

// Keys returns the keys in wire order.
func (f *Fields) Keys() []string {
	keys := make([]string, len(f.list))
	for i, fl := range f.list {
		keys[i] = fl.Name
	}
	return keys
}
