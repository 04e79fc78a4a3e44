package ai

import (
	"encoding/json"
	"log"
	"strings"
)

// result carries a parsed value and whether the fallback was used, so
// in-package tests can tell live data from defaults. Callers outside the
// package only ever see the value.
type result[T any] struct {
	value    T
	fellBack bool
}

// parseJSONResponse decodes a content-service reply, stripping an optional
// markdown code fence first. Any parse failure logs the offending text and
// yields the fallback; it never returns an error.
func parseJSONResponse[T any](raw string, fallback T) result[T] {
	cleaned := stripFence(raw)

	var value T
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		log.Printf("Failed to parse content response: %v", err)
		log.Printf("Offending text: %s", raw)
		return result[T]{value: fallback, fellBack: true}
	}

	return result[T]{value: value}
}

// stripFence removes a surrounding ```json ... ``` (or bare ```) fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
