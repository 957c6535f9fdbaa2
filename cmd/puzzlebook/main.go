// Package main provides the CLI entrypoint for puzzlebook.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"puzzlebook/internal/config"
	"puzzlebook/internal/corpus"
	"puzzlebook/internal/latex"
	"puzzlebook/internal/logging"
	"puzzlebook/internal/preview"
	"puzzlebook/internal/report"
	"puzzlebook/internal/selection"
	"puzzlebook/internal/store"
	"puzzlebook/internal/themes"
)

const (
	defaultNumber = 20
	defaultOutput = "chess_puzzles.tex"
)

var (
	genFile        string
	genNumber      int
	genMate        int
	genMateMix     string
	genMaxMate     int
	genPly         int
	genMaxPly      int
	genThemes      string
	genRatio       string
	genMinRating   int
	genMaxRating   int
	genProgressive bool
	genHideRatings bool
	genSeed        int64
	genTitle       string
	genOutput      string
	genPreview     bool
	genNoSummary   bool

	historyLast int

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "puzzlebook",
		Short:         "Generate printable chess puzzle worksheets from the Lichess puzzle database",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGenerateCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVarP(&genFile, "file", "f", "", "path to the Lichess puzzle CSV (default: XDG data dir)")
	rootCmd.Flags().IntVarP(&genNumber, "number", "n", defaultNumber, "number of puzzles to select")
	rootCmd.Flags().IntVarP(&genMate, "mate", "m", 0, "select mate-in-M puzzles")
	rootCmd.Flags().StringVar(&genMateMix, "mate-mix", "", "select mate puzzles with depths from a comma list (e.g. 1,2,3)")
	rootCmd.Flags().IntVar(&genMaxMate, "max-mate", 0, "select mate puzzles up to and including depth M")
	rootCmd.Flags().IntVar(&genPly, "ply", 0, "select tactical puzzles with an exact solution length in ply")
	rootCmd.Flags().IntVar(&genMaxPly, "max-ply", 0, "select tactical puzzles up to K ply (minimum one full move)")
	rootCmd.Flags().StringVarP(&genThemes, "themes", "t", "", "select puzzles matching any of the comma-listed themes")
	rootCmd.Flags().StringVar(&genRatio, "ratio", "", "tactical:mate mixing ratio for mixed sets (e.g. 70:30)")
	rootCmd.Flags().IntVar(&genMinRating, "min-rating", 0, "minimum puzzle rating")
	rootCmd.Flags().IntVar(&genMaxRating, "max-rating", 0, "maximum puzzle rating")
	rootCmd.Flags().BoolVar(&genProgressive, "progressive", false, "order puzzles from easiest to hardest")
	rootCmd.Flags().BoolVar(&genHideRatings, "hide-ratings", false, "omit ratings from the generated document")
	rootCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed for reproducible selection (0 = time-based)")
	rootCmd.Flags().StringVar(&genTitle, "title", "", "document title (default: derived from criteria)")
	rootCmd.Flags().StringVarP(&genOutput, "output", "o", defaultOutput, "output .tex filename")
	rootCmd.Flags().BoolVar(&genPreview, "preview", false, "browse the selected puzzles before writing the document")
	rootCmd.Flags().BoolVar(&genNoSummary, "no-summary", false, "suppress the selection summary table")

	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &genFile, fileCfg.Generate.File)
	applyIntConfig(cmd, "number", &genNumber, fileCfg.Generate.Number)
	applyIntConfig(cmd, "min-rating", &genMinRating, fileCfg.Generate.MinRating)
	applyIntConfig(cmd, "max-rating", &genMaxRating, fileCfg.Generate.MaxRating)
	applyBoolConfig(cmd, "progressive", &genProgressive, fileCfg.Generate.Progressive)
	applyBoolConfig(cmd, "hide-ratings", &genHideRatings, fileCfg.Generate.HideRatings)
	applyStringConfig(cmd, "output", &genOutput, fileCfg.Generate.Output)

	logger := logging.New(verbose)
	defer func() {
		// Best-effort flush; stderr sync errors are not actionable.
		_ = logger.Sync()
	}()

	modes, err := buildModes()
	if err != nil {
		return err
	}

	var ratio *selection.Ratio
	if genRatio != "" {
		parsed, err := selection.ParseRatio(genRatio)
		if err != nil {
			return err
		}
		ratio = &parsed
	}

	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	req := selection.Request{
		Count:       genNumber,
		MinRating:   genMinRating,
		MaxRating:   genMaxRating,
		Modes:       modes,
		Ratio:       ratio,
		Progressive: genProgressive,
		ShowRatings: !genHideRatings,
		Seed:        seed,
	}

	corpusPath := genFile
	if corpusPath == "" {
		corpusPath = config.DefaultCorpusPath()
	}
	if _, err := os.Stat(corpusPath); err != nil {
		if os.IsNotExist(err) {
			return corpusMissingError(corpusPath)
		}
		return fmt.Errorf("failed to stat corpus: %w", err)
	}

	logger.Info("selecting puzzles",
		zap.String("corpus", corpusPath),
		zap.Int("number", genNumber),
		zap.String("criteria", criteriaLabel(modes)),
		zap.Int64("seed", seed),
	)

	tally := &corpus.Tally{}
	comp, err := selection.Compose(corpus.Opener(corpusPath, tally), req)
	if err != nil {
		if errors.Is(err, selection.ErrEmptyResult) {
			return fmt.Errorf("%w; relax the rating band or criteria", err)
		}
		return err
	}
	if tally.Skipped > 0 {
		logger.Debug("skipped malformed corpus rows", zap.Int("rows", tally.Skipped))
	}
	for _, warning := range comp.Warnings {
		logger.Warn(warning.String())
	}

	title := genTitle
	if title == "" {
		title = defaultTitle(modes)
	}

	doc := latex.Document{Title: title, ShowRatings: req.ShowRatings}
	if err := os.WriteFile(genOutput, []byte(latex.Render(doc, comp.Puzzles)), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	logger.Info("document written",
		zap.String("output", genOutput),
		zap.Int("puzzles", len(comp.Puzzles)),
	)

	recordRun(logger, req, comp, criteriaLabel(modes), corpusPath)

	if !genNoSummary {
		if err := report.Summary(os.Stderr, comp.Puzzles); err != nil {
			logger.Warn("failed to print summary", zap.Error(err))
		}
	}

	if genPreview {
		if err := preview.Run(comp.Puzzles); err != nil {
			return err
		}
	}
	return nil
}

// buildModes translates flags into at most one mate-family and one
// tactical-family mode. With two modes the tactical mode comes first,
// matching the tactical:mate ratio order.
func buildModes() ([]selection.Mode, error) {
	var mateModes []selection.Mode
	if genMate > 0 {
		mateModes = append(mateModes, selection.MateExact{Depth: genMate})
	}
	if genMateMix != "" {
		depths, err := parseDepthList(genMateMix)
		if err != nil {
			return nil, err
		}
		mateModes = append(mateModes, selection.MateMix{Depths: depths})
	}
	if genMaxMate > 0 {
		mateModes = append(mateModes, selection.MateLessThan{Depth: genMaxMate})
	}
	if len(mateModes) > 1 {
		return nil, fmt.Errorf("use only one of --mate, --mate-mix, --max-mate")
	}

	var tacticalModes []selection.Mode
	if genThemes != "" {
		themeList, err := themes.Parse(genThemes)
		if err != nil {
			return nil, err
		}
		tacticalModes = append(tacticalModes, selection.ThemeSet{Themes: themeList})
	}
	if genPly > 0 {
		tacticalModes = append(tacticalModes, selection.PlyExact{Ply: genPly})
	}
	if genMaxPly > 0 {
		tacticalModes = append(tacticalModes, selection.PlyLessThan{Ply: genMaxPly})
	}
	if len(tacticalModes) > 1 {
		return nil, fmt.Errorf("use only one of --themes, --ply, --max-ply")
	}

	modes := append(tacticalModes, mateModes...)
	if len(modes) == 0 {
		return nil, fmt.Errorf("no selection criteria given; use --mate, --mate-mix, --max-mate, --themes, --ply, or --max-ply")
	}
	if genRatio != "" && len(modes) != 2 {
		return nil, fmt.Errorf("--ratio requires both a tactical and a mate criterion")
	}
	return modes, nil
}

func parseDepthList(s string) ([]int, error) {
	var depths []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		depth, err := strconv.Atoi(part)
		if err != nil || depth <= 0 {
			return nil, fmt.Errorf("invalid mate depth %q in --mate-mix", part)
		}
		depths = append(depths, depth)
	}
	if len(depths) == 0 {
		return nil, fmt.Errorf("--mate-mix must list at least one depth")
	}
	return depths, nil
}

func criteriaLabel(modes []selection.Mode) string {
	parts := make([]string, len(modes))
	for i, mode := range modes {
		parts[i] = mode.String()
	}
	return strings.Join(parts, " + ")
}

func defaultTitle(modes []selection.Mode) string {
	if len(modes) == 2 {
		return "Mixed Chess Puzzles"
	}
	switch mode := modes[0].(type) {
	case selection.MateExact:
		return fmt.Sprintf("Mate-in-%d Chess Puzzles", mode.Depth)
	case selection.MateMix, selection.MateLessThan:
		return "Checkmate Puzzles"
	case selection.ThemeSet:
		return fmt.Sprintf("Tactical Chess Puzzles (%s)", strings.Join(mode.Themes, ", "))
	default:
		return "Tactical Chess Puzzles"
	}
}

func recordRun(logger *zap.Logger, req selection.Request, comp selection.Composition, criteria, corpusPath string) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history db", zap.Error(err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close history db", zap.Error(cerr))
		}
	}()

	shortfall := 0
	for _, warning := range comp.Warnings {
		shortfall += warning.Requested - warning.Obtained
	}
	run := store.Run{
		CreatedAt:   time.Now(),
		Criteria:    criteria,
		Requested:   req.Count,
		Obtained:    len(comp.Puzzles),
		Shortfall:   shortfall,
		Seed:        req.Seed,
		MinRating:   req.MinRating,
		MaxRating:   req.MaxRating,
		Progressive: req.Progressive,
		CorpusPath:  corpusPath,
		OutputPath:  genOutput,
	}
	if _, err := st.InsertRun(context.Background(), run); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List supported tactical themes",
		Args:  cobra.NoArgs,
		RunE:  runThemesCmd,
	}
}

func runThemesCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range themes.Names() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", name, themes.Describe(name)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 20, "number of runs to show")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		logErrln("No runs recorded yet.")
		return nil
	}
	for _, run := range runs {
		line := fmt.Sprintf("%s  %-28s %d/%d puzzles  seed %d  %s",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Criteria,
			run.Obtained,
			run.Requested,
			run.Seed,
			run.OutputPath,
		)
		if run.Shortfall > 0 {
			line += fmt.Sprintf("  (short by %d)", run.Shortfall)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# puzzlebook configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# file = %q          # Path to the Lichess puzzle CSV
# number = %d        # Puzzles per document
# min-rating = 1200  # Minimum puzzle rating
# max-rating = 1800  # Maximum puzzle rating
# progressive = false # Order puzzles from easiest to hardest
# hide-ratings = false # Omit ratings from the document
# output = %q        # Output .tex filename
`,
		config.DefaultCorpusPath(),
		defaultNumber,
		defaultOutput,
	)
}

func corpusMissingError(path string) error {
	lines := []string{
		fmt.Sprintf("puzzle database not found at: %s", path),
		"Download the Lichess puzzle database (lichess_db_puzzle.csv.zst),",
		"decompress it, and pass its path with --file or set it in the config:",
		"  puzzlebook config",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
