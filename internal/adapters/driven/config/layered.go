package config

import (
	"strings"

	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure Layered implements the interface.
var _ driven.ConfigStore = (*Layered)(nil)

// Layered resolves each key from the last store that has it.
// Stores are given lowest precedence first.
type Layered struct {
	stores []driven.ConfigStore
}

// NewLayered stacks stores, lowest precedence first. Nil stores are skipped.
func NewLayered(stores ...driven.ConfigStore) *Layered {
	l := &Layered{}
	for _, s := range stores {
		if s != nil {
			l.stores = append(l.stores, s)
		}
	}
	return l
}

// Get retrieves a value from the highest-precedence store that has it.
func (l *Layered) Get(key string) (any, bool) {
	for i := len(l.stores) - 1; i >= 0; i-- {
		if val, ok := l.stores[i].Get(key); ok {
			return val, true
		}
	}
	return nil, false
}

// GetString retrieves a string configuration value.
func (l *Layered) GetString(key string) string {
	val, _ := l.Get(key)
	return String(val)
}

// GetInt retrieves an integer configuration value.
func (l *Layered) GetInt(key string) int {
	val, _ := l.Get(key)
	return Int(val)
}

// GetFloat retrieves a floating point configuration value.
func (l *Layered) GetFloat(key string) float64 {
	val, _ := l.Get(key)
	return Float(val)
}

// GetBool retrieves a boolean configuration value.
func (l *Layered) GetBool(key string) bool {
	val, _ := l.Get(key)
	return Bool(val)
}

// GetStringSlice retrieves a string slice configuration value.
func (l *Layered) GetStringSlice(key string) []string {
	val, _ := l.Get(key)
	return StringSlice(val)
}

// Path lists the layered sources, lowest precedence first.
func (l *Layered) Path() string {
	paths := make([]string, len(l.stores))
	for i, s := range l.stores {
		paths[i] = s.Path()
	}
	return strings.Join(paths, " < ")
}
