// Package main is the entry point for the kbind demo CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/kbind/internal/bindcfg"
	"github.com/dshills/kbind/internal/bindengine"
	"github.com/dshills/kbind/internal/termresolve"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	switch args[0] {
	case "demo":
		return runDemo(args[1:])
	case "config":
		return runConfig(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "kbind: unknown command %q\n", args[0])
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "kbind - input binding engine demo\n\n")
	fmt.Fprintf(os.Stderr, "Usage: kbind <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  demo -keymap FILE     Run a terminal loop matching bindings from a JSON keymap\n")
	fmt.Fprintf(os.Stderr, "  config get FILE KEY   Print an engine setting from a JSON settings file\n")
	fmt.Fprintf(os.Stderr, "  config set FILE KEY VALUE   Write an engine setting into a JSON settings file\n")
}

// demoCommand is the Payload type the demo engine dispatches: just the
// action name declared in the keymap, printed rather than executed, since
// the dispatch target is an external collaborator this module never
// implements.
type demoCommand struct {
	Action string
	Args   map[string]any
}

func runDemo(args []string) int {
	var keymapPath string
	for i := 0; i < len(args); i++ {
		if args[i] == "-keymap" && i+1 < len(args) {
			keymapPath = args[i+1]
			i++
		}
	}
	if keymapPath == "" {
		fmt.Fprintln(os.Stderr, "Error: demo requires -keymap FILE")
		return 1
	}

	data, err := os.ReadFile(keymapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading keymap: %v\n", err)
		return 1
	}

	settings := bindcfg.LoadSettingsEnv(bindcfg.DefaultSettings())
	engine := bindengine.New[demoCommand, struct{}](bindcfg.EngineOptions[demoCommand, struct{}](settings)...)

	toPayload := func(action string, args map[string]any) (demoCommand, error) {
		return demoCommand{Action: action, Args: args}, nil
	}
	if err := bindcfg.LoadKeymapJSON(data, engine, termresolve.Resolvers(), toPayload, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading keymap: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	drawBanner(screen)

	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return 0
			}
			for _, effect := range engine.KeyDown(struct{}{}, termresolve.EventFromTcell(tev)) {
				reportEffect(screen, effect)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func drawBanner(screen tcell.Screen) {
	msg := "kbind demo: press bound keys, Ctrl-C to quit"
	for i, r := range msg {
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

func reportEffect(screen tcell.Screen, effect bindengine.Effect[demoCommand]) {
	var line string
	switch effect.Kind {
	case bindengine.EffectExecute:
		line = fmt.Sprintf("execute: %s %v", effect.Payload.Action, effect.Payload.Args)
	case bindengine.EffectUnhandled:
		line = fmt.Sprintf("unhandled: keycode=%d mods=%s", effect.Key.Keycode, effect.Key.Modifiers)
	}

	width, _ := screen.Size()
	for x := 0; x < width; x++ {
		screen.SetContent(x, 1, ' ', nil, tcell.StyleDefault)
	}
	for i, r := range line {
		screen.SetContent(i, 1, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

func runConfig(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: config requires a subcommand (get/set), a file, and a key")
		return 1
	}

	verb, path := args[0], args[1]
	switch verb {
	case "get":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: config get requires FILE and KEY")
			return 1
		}
		return configGet(path, args[2])
	case "set":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "Error: config set requires FILE, KEY, and VALUE")
			return 1
		}
		return configSet(path, args[2], args[3])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config subcommand %q\n", verb)
		return 1
	}
}

func configGet(path, key string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
			return 1
		}
		data = []byte("{}")
	}
	settings, err := bindcfg.LoadSettingsJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", path, err)
		return 1
	}
	switch key {
	case "maxRemapDepth":
		fmt.Println(settings.MaxRemapDepth)
	case "flushTimeoutMs":
		fmt.Println(settings.FlushTimeout.Milliseconds())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown setting %q\n", key)
		return 1
	}
	return 0
}

func configSet(path, key, value string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
			return 1
		}
		data = []byte("{}")
	}
	settings, err := bindcfg.LoadSettingsJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", path, err)
		return 1
	}

	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q is not an integer\n", value)
		return 1
	}
	switch key {
	case "maxRemapDepth":
		settings.MaxRemapDepth = n
	case "flushTimeoutMs":
		settings.FlushTimeout = time.Duration(n) * time.Millisecond
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown setting %q\n", key)
		return 1
	}

	doc, err := bindcfg.MarshalSettingsJSON(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: marshaling settings: %v\n", err)
		return 1
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing %s: %v\n", path, err)
		return 1
	}
	return 0
}
