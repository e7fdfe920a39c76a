package bindcfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/kbind/internal/bindengine"
)

// Default engine settings, mirrored by DefaultSettings.
const (
	DefaultMaxRemapDepth = 64
	DefaultFlushTimeout  = 500 * time.Millisecond
)

// envPrefix is the prefix recognized by LoadSettingsEnv.
const envPrefix = "KBIND_"

// Settings holds the engine-wide knobs that are not part of any single
// binding: the remap recursion cap and how long the host should wait on an
// idle buffer before calling Flush.
type Settings struct {
	MaxRemapDepth int
	FlushTimeout  time.Duration
}

// DefaultSettings returns the engine's out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		MaxRemapDepth: DefaultMaxRemapDepth,
		FlushTimeout:  DefaultFlushTimeout,
	}
}

// LoadSettingsJSON reads engine settings from a document shaped like:
//
//	{"engine": {"maxRemapDepth": 64, "flushTimeoutMs": 500}}
//
// Fields absent from data keep their DefaultSettings value.
func LoadSettingsJSON(data []byte) (Settings, error) {
	s := DefaultSettings()
	if !gjson.ValidBytes(data) {
		return s, errInvalidSettingsJSON
	}
	root := gjson.ParseBytes(data)
	if v := root.Get("engine.maxRemapDepth"); v.Exists() {
		s.MaxRemapDepth = int(v.Int())
	}
	if v := root.Get("engine.flushTimeoutMs"); v.Exists() {
		s.FlushTimeout = time.Duration(v.Int()) * time.Millisecond
	}
	return s, nil
}

// MarshalSettingsJSON writes s into a document shaped the way
// LoadSettingsJSON reads it back.
func MarshalSettingsJSON(s Settings) ([]byte, error) {
	doc := []byte("{}")
	doc, err := sjson.SetBytes(doc, "engine.maxRemapDepth", s.MaxRemapDepth)
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetBytes(doc, "engine.flushTimeoutMs", s.FlushTimeout.Milliseconds())
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSettingsEnv overlays KBIND_-prefixed environment variables onto base:
// KBIND_MAX_REMAP_DEPTH and KBIND_FLUSH_TIMEOUT_MS. Unset or unparseable
// variables leave the corresponding field untouched.
func LoadSettingsEnv(base Settings) Settings {
	s := base
	if v, ok := os.LookupEnv(envPrefix + "MAX_REMAP_DEPTH"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.MaxRemapDepth = n
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "FLUSH_TIMEOUT_MS"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.FlushTimeout = time.Duration(n) * time.Millisecond
		}
	}
	return s
}

// EngineOptions adapts Settings into the bindengine.Option values New
// expects.
func EngineOptions[Payload, Context any](s Settings) []bindengine.Option[Payload, Context] {
	return []bindengine.Option[Payload, Context]{
		bindengine.WithMaxRemapDepth[Payload, Context](s.MaxRemapDepth),
	}
}
