// Package messages holds the user-facing strings surfaced through state
// updates. The storefront speaks Spanish to its users; keys are stable and
// language files are embedded so the SDK works without any asset lookup at
// runtime.
package messages

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed es.json
var localeFS embed.FS

var (
	once    sync.Once
	catalog map[string]string
)

func load() {
	b, err := localeFS.ReadFile("es.json")
	if err != nil {
		// Embedded asset; missing only on a broken build.
		panic("messages: es.json missing: " + err.Error())
	}
	if err := json.Unmarshal(b, &catalog); err != nil {
		panic("messages: es.json malformed: " + err.Error())
	}
}

// Lookup returns the localized string for key, or the key itself when no
// translation exists so callers always have something to display.
func Lookup(key string) string {
	once.Do(load)
	if s, ok := catalog[key]; ok {
		return s
	}
	return key
}
