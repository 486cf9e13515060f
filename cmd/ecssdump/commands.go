package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/npillmayer/ecss"
	"github.com/npillmayer/ecss/asset"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/cssom/douceuradapter"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/matching"
	"github.com/npillmayer/ecss/scene"
	"github.com/npillmayer/ecss/scene/scenedbg"
	"github.com/npillmayer/ecss/styling"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

// --- Flags -----------------------------------------------------------------

var (
	traceLevel  string
	useDouceur  bool
	styleRoot   string
	cssFiles    []string
	groups      []string
	dotOutput   bool
	watchSheets bool

	rootCmd = &cobra.Command{
		Use:   "ecssdump",
		Short: "Inspect stylesheets and styled scenes",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupTracing(traceLevel)
		},
		SilenceUsage: true,
	}

	parseCmd = &cobra.Command{
		Use:   "parse [file.css]",
		Short: "Parse a stylesheet and print its rules",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}

	styleCmd = &cobra.Command{
		Use:   "style [file.html]",
		Short: "Build a scene from an HTML document, style it and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runStyle,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "error", "Trace level (error, info, debug)")

	parseCmd.Flags().BoolVar(&useDouceur, "douceur", false, "Parse with the douceur CSS parser")

	styleCmd.Flags().StringVar(&styleRoot, "root", ".", "Directory stylesheets are loaded from")
	styleCmd.Flags().StringSliceVar(&cssFiles, "css", nil, "Stylesheet to attach, relative to --root (repeatable)")
	styleCmd.Flags().StringSliceVar(&groups, "group", nil, "Style groups to print (layout, box, paint, text)")
	styleCmd.Flags().BoolVar(&dotOutput, "dot", false, "Print the styled scene in GraphViz DOT format")
	styleCmd.Flags().BoolVar(&watchSheets, "watch", false, "Re-style and print whenever a stylesheet changes")

	rootCmd.AddCommand(parseCmd, styleCmd)
}

// --- parse -----------------------------------------------------------------

func runParse(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var sheet *cssom.StyleSheet
	if useDouceur {
		if sheet, err = douceuradapter.Import(args[0], string(text)); err != nil {
			return err
		}
	} else {
		sheet = cssom.NewStyleSheet(args[0], string(text))
	}
	fmt.Fprintln(cmd.OutOrStdout(), sheet.Dump())
	return nil
}

// --- style -----------------------------------------------------------------

func runStyle(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	doc, err := html.Parse(f)
	f.Close()
	if err != nil {
		return err
	}
	sc, root := scene.FromHTMLNode(doc)
	if root == 0 {
		return fmt.Errorf("%s contains no elements", args[0])
	}
	store := asset.NewStore(asset.Root(styleRoot))
	var handles []asset.Handle
	for i, text := range douceuradapter.StyleTexts(doc) {
		handles = append(handles, store.Set(fmt.Sprintf("%s#style%d", args[0], i), text))
	}
	for _, p := range cssFiles {
		h, err := store.Load(p)
		if err != nil {
			return err
		}
		handles = append(handles, h)
	}
	engine := ecss.New(sc, styling.WithStore(store))
	registerTags(engine.Registry(), sc, root)
	engine.Attach(root, handles...)
	engine.Tick()
	if !watchSheets {
		return printScene(cmd.OutOrStdout(), sc, root)
	}
	return watch(cmd, store, engine, sc, root)
}

// registerTags makes every component present in the scene usable as a
// type selector.
func registerTags(reg *matching.Registry, sc *scene.Scene, root host.NodeID) {
	for _, n := range matching.Subtree(sc, root) {
		for _, c := range sc.Components(n) {
			if _, ok := reg.Lookup(c); !ok {
				reg.RegisterComponents(c)
			}
		}
	}
}

func printScene(w io.Writer, sc *scene.Scene, root host.NodeID) error {
	if dotOutput {
		return scenedbg.ToGraphViz(sc, root, w, groups)
	}
	_, err := fmt.Fprintln(w, scenedbg.Dump(sc, root, groups...))
	return err
}

func watch(cmd *cobra.Command, store *asset.Store, engine *styling.Engine,
	sc *scene.Scene, root host.NodeID) error {
	//
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	watcher, err := store.Watch(ctx)
	if err != nil {
		return err
	}
	defer watcher.Close()
	last := scenedbg.Dump(sc, root, groups...)
	if err = printScene(cmd.OutOrStdout(), sc, root); err != nil {
		return err
	}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.Canceled {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			sc.Advance()
			engine.Tick()
			if dump := scenedbg.Dump(sc, root, groups...); dump != last {
				last = dump
				if err = printScene(cmd.OutOrStdout(), sc, root); err != nil {
					return err
				}
			}
		}
	}
}
