package bindcfg

import "errors"

var (
	errInvalidSettingsJSON = errors.New("bindcfg: invalid settings JSON")
	errNoBindingsArray     = errors.New("bindcfg: keymap JSON has no \"bindings\" array")
)
