package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/miosa/marquee/app"
	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/config"
	"github.com/miosa/marquee/style"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.marquee/profiles/<name>)")
	fileFlag := flag.String("file", "", "Read the catalog from a JSON file instead of the server")
	sampleFlag := flag.Int("sample", 0, "Browse N generated titles instead of a real catalog")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error or off")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("marquee %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".marquee")
	if *profileFlag != "" {
		profileDir = filepath.Join(profileDir, "profiles", *profileFlag)
	}

	cfg, err := config.Load(profileDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)

	log, logCloser, err := config.OpenLogger(cfg.LogPath(profileDir), cfg.ResolveLogLevel(*logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	src := app.Source{Sample: *sampleFlag, File: *fileFlag}
	if src.File == "" {
		src.File = cfg.Catalog.File
	}
	if src.Sample == 0 && src.File == "" && cfg.Catalog.URL != "" {
		c := client.New(cfg.Catalog.URL)
		c.SetToken(cfg.Catalog.Token)
		c.SetLogger(log)
		src.Client = c
		for _, k := range []client.Kind{client.KindMovie, client.KindShow} {
			if cfg.Catalog.HasKind(string(k)) {
				src.Kinds = append(src.Kinds, k)
			}
		}
	}
	log.Info("starting", "version", version, "profile", profileDir, "source", src.String())

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := dump(os.Stdout, src); err != nil {
			fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// A configured theme wins; otherwise follow the terminal background.
	if !style.SetTheme(cfg.Theme) {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			style.SetTheme("dark")
		} else {
			style.SetTheme("light")
		}
	}

	m, err := app.New(app.Options{
		Config:     cfg,
		ProfileDir: profileDir,
		Source:     src,
		Logger:     log,
		Version:    version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}

	// AltScreen and mouse mode are set on the View returned by the model.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		log.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
}

// dump prints the catalog as a plain table when stdout is not a terminal.
func dump(w io.Writer, src app.Source) error {
	items, err := src.Load(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f\n", it.Title, it.Year, it.Kind, it.Rating)
	}
	return tw.Flush()
}
