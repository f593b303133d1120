// SPDX-License-Identifier: EPL-2.0

// Command audcut cuts a time window out of an audio file and writes it as a
// mono 16-bit PCM WAV.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ik5/audcut"
	"github.com/ik5/audcut/audio"
)

// version is set via ldflags at build time
var version = "dev"

type cli struct {
	Input           string           `arg:"" name:"input" help:"Input audio file (wav, mp3, ogg, aiff, flac)" type:"existingfile"`
	Output          string           `short:"o" help:"Output WAV file" default:"${default_output}"`
	Start           float64          `help:"Window start in seconds" default:"0"`
	End             float64          `help:"Window end in seconds, leaving both bounds at 0 keeps the whole file" default:"0"`
	MIME            string           `name:"mime" help:"Declared MIME type of the input, guessed from the extension when empty"`
	RequireNonEmpty bool             `help:"Fail when the window selects no frames"`
	LogLevel        string           `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	Version         kong.VersionFlag `help:"Show version information"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("audcut"),
		kong.Description("Cut a [start, end) window out of an audio file and export it as WAV."),
		kong.Vars{
			"version":        version,
			"default_output": audio.DefaultFileName,
		},
		kong.UsageOnError(),
	)

	logger, err := newLogger(os.Stderr, c.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(c, logger); err != nil {
		logger.Error("cut failed", "input", c.Input, "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// mimeHint returns declared when set, otherwise the type registered for
// path's extension. An empty hint leaves detection to content sniffing.
func mimeHint(declared, path string) string {
	if declared != "" {
		return declared
	}

	return mime.TypeByExtension(filepath.Ext(path))
}

func run(c cli, logger *slog.Logger) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	hint := mimeHint(c.MIME, c.Input)
	logger.Debug("input loaded", "bytes", len(data), "mime", hint)

	res, err := audcut.Cut(audcut.CutRequest{
		Data:            data,
		MIMEType:        hint,
		Window:          audio.Window{Start: c.Start, End: c.End},
		WholeFile:       c.Start == 0 && c.End == 0,
		RequireNonEmpty: c.RequireNonEmpty,
	})
	if err != nil {
		return err
	}

	logger.Info("decoded",
		"sample_rate", res.SampleRate,
		"channels", res.Channels,
		"duration", res.Duration,
	)

	if err := os.WriteFile(c.Output, res.Blob.Bytes, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("wrote clip",
		"output", c.Output,
		"start", res.Window.Start,
		"end", res.Window.End,
		"frames", res.Frames,
		"bytes", res.Blob.Len(),
	)

	return nil
}
