package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tonedeck/tonedeck/audio"
	"github.com/tonedeck/tonedeck/changelog"
	"github.com/tonedeck/tonedeck/constants"
	"github.com/tonedeck/tonedeck/probe"
	"github.com/tonedeck/tonedeck/session"
	"github.com/tonedeck/tonedeck/ui"
)

const changelogPath = "CHANGELOG.md"

var (
	dirFlag   = flag.String("dir", ".", "directory scanned for audio files")
	fileFlag  = flag.String("file", "", "audio file to load at startup")
	debugFlag = flag.Bool("debug", false, "write debug logs to logs/tonedeck.log")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	// Fail fast on an explicitly selected file the engine cannot play
	if *fileFlag != "" {
		if _, err := probe.Probe(*fileFlag); err != nil {
			fmt.Fprintf(os.Stderr, "cannot load %s: %v\n", *fileFlag, err)
			os.Exit(1)
		}
	}

	files, err := probe.Scan(*dirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\x1b[31mTONEDECK CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	run(screen, files, *fileFlag)
}

// run owns the event loop: user input, throttled settings snapshots, load
// completions and the frame ticker all converge here, so every state
// transition is applied single-threaded.
func run(screen tcell.Screen, files []string, start string) {
	eng := audio.NewEngine(audio.LoadConfig())
	defer eng.Close()

	ctrl := session.NewController(eng)
	gate := session.NewGate[session.Settings](constants.ThrottleWindow)
	defer gate.Stop()

	settings := session.Defaults()
	model := &ui.Model{Settings: settings, Files: files}

	if releases, err := changelog.Load(changelogPath); err != nil {
		log.Printf("changelog: %v", err)
		model.ChangelogNote = "changelog unavailable"
	} else {
		model.Releases = releases
	}

	apply := func(ops []session.Op) {
		if len(ops) == 0 {
			return
		}
		for _, op := range ops {
			settings = session.Apply(settings, op)
		}
		model.Settings = settings
		gate.Set(settings)
	}

	// Prime the gate: the first window fires the wiring sync
	gate.Set(settings)

	if start != "" {
		for i, f := range files {
			if f == start {
				model.FileIndex = i
			}
		}
		apply([]session.Op{session.RequestLoad{Path: start}})
	}

	events := make(chan tcell.Event, 128)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(constants.FrameInterval)
	defer ticker.Stop()

	lastWaveFile := ""
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				ops, action := ui.HandleKey(ev, model)
				switch action {
				case ui.ActionQuit:
					return
				case ui.ActionToggle:
					ctrl.TogglePlay()
				}
				apply(ops)
			case *tcell.EventResize:
				screen.Sync()
				lastWaveFile = "" // re-extract peaks at the new width
			}

		case snapshot := <-gate.Out():
			apply(ctrl.Sync(snapshot))

		case result := <-ctrl.Results():
			apply(ctrl.Resolve(result))

		case <-ticker.C:
			model.Settings = settings
			model.Transport = eng.State()
			model.Position = eng.Position()
			model.Level = eng.Level()
			model.Loading = ctrl.Loading()
			model.Silent = eng.Silent()
			if settings.File != lastWaveFile {
				lastWaveFile = settings.File
				width, _ := screen.Size()
				model.Peaks = eng.Waveform(width)
			}
			ui.Draw(screen, model)
		}
	}
}
