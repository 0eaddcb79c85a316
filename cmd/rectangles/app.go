// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	"loverde.org/rectangles/geom"
	"loverde.org/rectangles/internal/config"
	"loverde.org/rectangles/internal/diagram"
	"loverde.org/rectangles/internal/logging"
	"loverde.org/rectangles/internal/scenario"
	"loverde.org/rectangles/internal/tty"
)

type app struct {
	version        string
	stdout, stderr io.Writer
	cfg            config.Config
	log            *slog.Logger
	styles         styles
}

type styles struct {
	label lipgloss.Style
	none  lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
}

func newStyles(w io.Writer, color config.Color) styles {
	r := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		if f, ok := w.(*os.File); !ok || !tty.IsTerminal(f) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return styles{
		label: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		none:  r.NewStyle().Faint(true),
		ok:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		fail:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{
		version: version,
		stdout:  stdout,
		stderr:  stderr,
		cfg:     config.Default(),
		log:     slog.Default(),
		styles:  newStyles(stdout, config.ColorAuto),
	}
	pairUsage := "x0,y0,x1,y1 x0,y0,x1,y1"
	return &cli.Command{
		Name:        "rectangles",
		Usage:       "relate axis-aligned rectangles",
		Description: mainDescription,
		Version:     a.version,
		Writer:      stdout,
		ErrWriter:   stderr,
		// Errors are returned to main, which picks the exit status.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file to load (default .env, if present)",
				Sources: cli.EnvVars("RECTANGLES_ENV_FILE"),
			},
			&cli.StringFlag{Name: "color", Usage: "style output: auto, always or never"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{Name: "relate", Usage: "print every relationship of two rectangles", ArgsUsage: pairUsage, Action: a.relate},
			{Name: "overlap", Usage: "print the overlap region", ArgsUsage: pairUsage, Action: a.overlap},
			{Name: "intersections", Usage: "print the points where the edges cross", ArgsUsage: pairUsage, Action: a.intersections},
			{Name: "contains", Usage: "print which rectangle contains the other: first, second or none", ArgsUsage: pairUsage, Action: a.contains},
			{Name: "adjacent", Usage: "print whether the rectangles share an edge segment", ArgsUsage: pairUsage, Action: a.adjacent},
			{Name: "check", Usage: "evaluate scenario files", ArgsUsage: "FILE...", Action: a.check},
			{
				Name:      "draw",
				Usage:     "render two rectangles as a PNG diagram",
				ArgsUsage: pairUsage,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "PNG file to write, - for standard output", Required: true},
					&cli.StringFlag{Name: "scale", Usage: "pixels per unit (default RECTANGLES_DIAGRAM_SCALE or 20)"},
				},
				Action: a.draw,
			},
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("color") {
		if cfg.Color, err = config.ParseColor(cmd.String("color")); err != nil {
			return ctx, err
		}
	}
	var override logging.Config
	if cmd.IsSet("log-level") {
		v := cmd.String("log-level")
		override.Level = &v
	}
	if cmd.IsSet("log-format") {
		v := cmd.String("log-format")
		override.Format = &v
	}
	logger, err := logging.Init(cfg.Logging.Merge(override), logging.Options{
		App:     "rectangles",
		Version: a.version,
		Stderr:  a.stderr,
	})
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.log = logger
	a.styles = newStyles(a.stdout, cfg.Color)
	return ctx, nil
}

func (a *app) relate(ctx context.Context, cmd *cli.Command) error {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	rel := geom.Relate(x, y)
	a.logRelation(x, y, rel)
	overlap := a.styles.none.Render("none")
	if rel.Overlaps {
		overlap = rel.Overlap.String()
	}
	a.field("overlap", overlap)
	a.field("intersections", a.points(rel.Intersections, " "))
	a.field("containment", rel.Containment.String())
	a.field("adjacent", strconv.FormatBool(rel.Adjacent))
	return nil
}

func (a *app) overlap(ctx context.Context, cmd *cli.Command) error {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	o, ok := geom.Overlap(x, y)
	a.log.Debug("overlap", "a", x.String(), "b", y.String(), "overlaps", ok)
	if !ok {
		fmt.Fprintln(a.stdout, a.styles.none.Render("none"))
		return nil
	}
	fmt.Fprintln(a.stdout, o)
	return nil
}

func (a *app) intersections(ctx context.Context, cmd *cli.Command) error {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	pts := geom.Intersections(x, y)
	a.log.Debug("intersections", "a", x.String(), "b", y.String(), "count", len(pts))
	fmt.Fprintln(a.stdout, a.points(pts, "\n"))
	return nil
}

func (a *app) contains(ctx context.Context, cmd *cli.Command) error {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	c := geom.WhoContains(x, y)
	a.log.Debug("contains", "a", x.String(), "b", y.String(), "containment", c.String())
	fmt.Fprintln(a.stdout, c)
	return nil
}

func (a *app) adjacent(ctx context.Context, cmd *cli.Command) error {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	adj := geom.Adjacent(x, y)
	a.log.Debug("adjacent", "a", x.String(), "b", y.String(), "adjacent", adj)
	fmt.Fprintln(a.stdout, adj)
	return nil
}

func (a *app) check(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("check: no scenario files", 2)
	}
	failed := 0
	for _, path := range files {
		cases, err := scenario.Load(path)
		if err != nil {
			return err
		}
		results, err := scenario.Run(ctx, cases, a.cfg.Workers)
		if err != nil {
			return err
		}
		for _, r := range results {
			a.log.Debug("case evaluated",
				slog.String("file", path),
				slog.String("case", r.Case.Name),
				slog.String("a", r.Case.A.String()),
				slog.String("b", r.Case.B.String()),
				slog.Bool("ok", r.OK()),
			)
		}
		bad := scenario.Failed(results)
		a.log.Info("scenario file checked", "file", path, "cases", len(cases), "failed", len(bad))
		if len(bad) == 0 {
			fmt.Fprintf(a.stdout, "%s %s (%d cases)\n", a.styles.ok.Render("ok  "), path, len(cases))
			continue
		}
		failed += len(bad)
		fmt.Fprintf(a.stdout, "%s %s (%d of %d cases failed)\n", a.styles.fail.Render("FAIL"), path, len(bad), len(cases))
		for _, r := range bad {
			for _, m := range r.Mismatches {
				fmt.Fprintf(a.stdout, "    %s: %s\n", r.Case.Name, m)
			}
		}
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (a *app) draw(ctx context.Context, cmd *cli.Command) (err error) {
	x, y, err := pair(cmd)
	if err != nil {
		return err
	}
	scale := a.cfg.DiagramScale
	if cmd.IsSet("scale") {
		s := cmd.String("scale")
		if scale, err = strconv.Atoi(s); err != nil || scale < 1 {
			return fmt.Errorf("draw: scale must be a positive integer, got %q", s)
		}
	}
	img, err := diagram.Render(diagram.ForRelation(x, y), diagram.Options{Scale: scale})
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	out := cmd.String("output")
	a.log.Debug("draw", "a", x.String(), "b", y.String(), "output", out, "size", img.Bounds().Size().String())
	if out == "-" {
		return diagram.Encode(a.stdout, img)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("draw: %w", cerr)
		}
	}()
	if err := diagram.Encode(f, img); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

func (a *app) field(name, value string) {
	fmt.Fprintf(a.stdout, "%s %s\n", a.styles.label.Render(fmt.Sprintf("%-14s", name+":")), value)
}

func (a *app) points(pts []geom.Point, sep string) string {
	if len(pts) == 0 {
		return a.styles.none.Render("none")
	}
	s := make([]string, len(pts))
	for i, p := range pts {
		s[i] = p.String()
	}
	return strings.Join(s, sep)
}

func (a *app) logRelation(x, y geom.Rectangle, rel geom.Relation) {
	a.log.Debug("relate",
		slog.String("a", x.String()),
		slog.String("b", y.String()),
		slog.Bool("overlaps", rel.Overlaps),
		slog.Int("intersections", len(rel.Intersections)),
		slog.String("containment", rel.Containment.String()),
		slog.Bool("adjacent", rel.Adjacent),
	)
}

// pair parses the two rectangle arguments of cmd.
func pair(cmd *cli.Command) (geom.Rectangle, geom.Rectangle, error) {
	args := cmd.Args()
	if n := args.Len(); n != 2 {
		return geom.Rectangle{}, geom.Rectangle{}, cli.Exit(fmt.Sprintf("%s: want 2 rectangles, got %d", cmd.Name, n), 2)
	}
	a, err := parseRect(args.Get(0))
	if err != nil {
		return geom.Rectangle{}, geom.Rectangle{}, fmt.Errorf("%s: first rectangle: %w", cmd.Name, err)
	}
	b, err := parseRect(args.Get(1))
	if err != nil {
		return geom.Rectangle{}, geom.Rectangle{}, fmt.Errorf("%s: second rectangle: %w", cmd.Name, err)
	}
	return a, b, nil
}

// parseRect parses "x0,y0,x1,y1".
func parseRect(s string) (geom.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rectangle{}, fmt.Errorf("%q: want x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rectangle{}, fmt.Errorf("%q: %w", s, err)
		}
		v[i] = f
	}
	return geom.Rect(v[0], v[1], v[2], v[3])
}
