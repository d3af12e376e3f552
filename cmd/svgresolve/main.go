// Command svgresolve prints the resolved drawing model of an SVG file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgmodel/svgdoc"
	"github.com/tdewolff/argp"
	"gopkg.in/yaml.v3"
)

type Resolve struct {
	Format  string  `short:"f" default:"yaml" desc:"Output format, yaml or json"`
	Strict  bool    `desc:"Stop on the first invalid element"`
	Verbose bool    `short:"v" desc:"Log the leniency fallbacks"`
	Width   float64 `short:"w" desc:"Viewport width, for documents without size"`
	Height  float64 `short:"H" desc:"Viewport height, for documents without size"`
	Input   string  `index:"0" desc:"Input file"`
}

func main() {
	root := argp.NewCmd(&Resolve{}, "Resolve the styles, paints, filters and markers of an SVG document")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Resolve) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if cmd.Format != "yaml" && cmd.Format != "json" {
		return fmt.Errorf("unsupported format %q", cmd.Format)
	}

	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	opts := []svgdoc.Option{
		svgdoc.WithErrorMode(svgdoc.WarnErrorMode),
		svgdoc.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	}
	if cmd.Strict {
		opts = append(opts, svgdoc.WithErrorMode(svgdoc.StrictErrorMode))
	}
	if cmd.Width > 0 && cmd.Height > 0 {
		opts = append(opts, svgdoc.WithViewport(cmd.Width, cmd.Height))
	}

	f, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := svgdoc.Read(f, opts...)
	if err != nil {
		return err
	}
	return write(os.Stdout, summarize(doc), cmd.Format)
}

func write(w io.Writer, s summary, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
