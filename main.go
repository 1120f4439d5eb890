// entry point

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"chipulator/emulator"
	"chipulator/keypad"
	"chipulator/screen"
	"chipulator/static"
	"chipulator/tone"
	"chipulator/version"
)

func main() {

	//
	// Parse the command-line flags
	//
	scr := flag.String("screen", "termbox",
		fmt.Sprintf("The display driver to use, one of: %s", strings.Join(screen.GetDrivers(), ", ")))
	pad := flag.String("keypad", "termbox",
		fmt.Sprintf("The keypad driver to use, one of: %s", strings.Join(keypad.GetDrivers(), ", ")))
	snd := flag.String("tone", "beep",
		fmt.Sprintf("The tone driver to use, one of: %s", strings.Join(tone.GetDrivers(), ", ")))
	rate := flag.Int("rate", 300, "How many instructions to execute per second")
	debug := flag.Bool("debug", false, "Log the execution of every instruction")
	ver := flag.Bool("version", false, "Show our version and exit")
	flag.Parse()

	if *ver {
		fmt.Print(version.GetVersionBanner())
		return
	}

	// With no ROM named we fall back to an embedded demo, so that
	// the emulator does something out of the box.
	rom := ""
	switch len(flag.Args()) {
	case 0:
	case 1:
		rom = flag.Args()[0]
	default:
		fmt.Printf("Usage: chipulator [flags] path/to/rom.ch8\n")
		os.Exit(1)
	}

	// Setup our logging level - default to warnings or higher
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	// But show "everything" if -debug was given, or $DEBUG is non-empty
	if *debug || os.Getenv("DEBUG") != "" {
		lvl.Set(slog.LevelDebug)
	}

	//
	// Create our logging handler, using the level we've just setup.
	//
	// Logging goes to a file rather than the terminal, since the
	// display drivers own the terminal while we run.
	//
	logFile, err := os.OpenFile("chipulator.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error opening logfile: %s\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: lvl,
	}))

	log.Info("starting",
		slog.String("version", version.GetVersionString()),
		slog.String("rom", rom))

	//
	// Create a new emulator.
	//
	emu, err := emulator.New(
		emulator.WithScreenDriver(*scr),
		emulator.WithKeypadDriver(*pad),
		emulator.WithToneDriver(*snd),
		emulator.WithInstructionRate(*rate),
		emulator.WithLogger(log))
	if err != nil {
		fmt.Printf("Error creating emulator: %s\n", err)
		os.Exit(1)
	}

	//
	// Load the ROM we've been given, or the embedded demo.
	//
	if rom == "" {
		data, err2 := static.GetROM("font")
		if err2 != nil {
			fmt.Printf("Error loading embedded ROM: %s\n", err2)
			os.Exit(1)
		}
		err = emu.LoadProgram(data)
		rom = "font (embedded)"
	} else {
		err = emu.LoadFile(rom)
	}
	if err != nil {
		fmt.Printf("Error loading %s: %s\n", rom, err)
		os.Exit(1)
	}

	//
	// Run until the program dies, the user quits, or we're signaled.
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		fmt.Printf("Error running %s: %s\n", rom, err)
		os.Exit(1)
	}
}
