// Package env reads environment variables through an interface so tests can
// supply their own.
package env

import (
	"os"
	"strconv"
	"strings"
)

type Env interface {
	Get(key string) string
	Lookup(key string) (string, bool)
}

type osEnv struct{}

// Get implements Env.
func (osEnv) Get(key string) string {
	return os.Getenv(key)
}

// Lookup implements Env.
func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func New() Env {
	return osEnv{}
}

type mapEnv struct {
	m map[string]string
}

// Get implements Env.
func (m *mapEnv) Get(key string) string {
	return m.m[key]
}

// Lookup implements Env.
func (m *mapEnv) Lookup(key string) (string, bool) {
	v, ok := m.m[key]
	return v, ok
}

func NewFromMap(m map[string]string) Env {
	if m == nil {
		m = make(map[string]string)
	}
	return &mapEnv{m: m}
}

// Bool reads key as a boolean. ok is false when the variable is unset, empty
// or not a boolean.
func Bool(e Env, key string) (value, ok bool) {
	raw, set := e.Lookup(key)
	if !set || strings.TrimSpace(raw) == "" {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}
