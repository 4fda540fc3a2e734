// Command dupcheck ranks a list of issue titles against a query title, or
// compares two titles directly.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"github.com/baditaflorin/go_issue_similarity/pkg/duplicates"
)

// options holds the parsed command line.
type options struct {
	query      string
	file       string
	threshold  float64
	maxResults int
	dup        bool
	normalizer string
	explain    bool
	output     string
	verbose    bool
	args       []string
}

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("dupcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.query, "query", "", "Title to rank the input titles against")
	fs.StringVar(&opts.file, "file", "", "File with one title per line (default: stdin)")
	fs.Float64Var(&opts.threshold, "threshold", duplicates.DefaultSuggestionThreshold, "Minimum combined score (0.0-1.0)")
	fs.IntVar(&opts.maxResults, "max", duplicates.DefaultMaxResults, "Maximum number of matches to print")
	fs.BoolVar(&opts.dup, "dup", false, "Compare the two positional titles and report whether they are duplicates")
	fs.StringVar(&opts.normalizer, "normalizer", normalizer.DefaultNormalizerType.String(), "Normalizer: 'default' or 'folding'")
	fs.BoolVar(&opts.explain, "explain", false, "Print word overlap and edit distance next to the score")
	fs.StringVar(&opts.output, "output", "text", "Output format: 'text' or 'json'")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log every comparison above the log floor to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dupcheck [options] [-dup TITLE_A TITLE_B]\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  dupcheck -query=\"Fix potholes on Main St\" -file=titles.txt\n")
		fmt.Fprintf(stderr, "  cat titles.txt | dupcheck -query=\"Ban plastic bags\" -threshold=0.4 -explain\n")
		fmt.Fprintf(stderr, "  dupcheck -dup \"Fix potholes on Main St\" \"Fix potholes on main street\"\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.args = fs.Args()

	if err := opts.validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return nil, errUsage
	}
	return opts, nil
}

func (o *options) validate() error {
	if o.dup {
		if len(o.args) != 2 {
			return fmt.Errorf("-dup needs exactly two titles, got %d", len(o.args))
		}
	} else if strings.TrimSpace(o.query) == "" {
		return fmt.Errorf("-query is required")
	}
	if o.threshold < 0 || o.threshold > 1 {
		return fmt.Errorf("threshold must be between 0.0 and 1.0")
	}
	if o.maxResults <= 0 {
		return fmt.Errorf("max must be greater than 0")
	}
	if _, err := normalizer.ParseType(o.normalizer); err != nil {
		return err
	}
	if o.output != "text" && o.output != "json" {
		return fmt.Errorf("invalid output format: %s. Must be 'text' or 'json'", o.output)
	}
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var log ports.Logger = logger.NewNopLogger()
	if opts.verbose {
		log, err = logger.NewCustomStdLogger(logger.DefaultConfig(stderr, false))
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}
	defer log.Close()

	engine, err := newEngine(opts, log)
	if err != nil {
		return err
	}

	if opts.dup {
		return compare(engine, opts, stdout)
	}

	input := stdin
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("failed to open titles: %w", err)
		}
		defer f.Close()
		input = f
	}

	candidates, err := readTitles(input)
	if err != nil {
		return err
	}
	return rank(engine, opts, candidates, stdout)
}

func newEngine(opts *options, log ports.Logger) (*duplicates.Engine[int], error) {
	t, err := normalizer.ParseType(opts.normalizer)
	if err != nil {
		return nil, err
	}
	return duplicates.New[int](
		duplicates.WithPortsLogger(log),
		duplicates.WithNormalizer(normalizer.NewNormalizerFactory().CreateNormalizer(t)),
		duplicates.WithMaxResults(opts.maxResults),
	)
}

// readTitles turns every non-blank line into a candidate whose payload is
// its 1-based line number.
func readTitles(r io.Reader) ([]duplicates.Candidate[int], error) {
	var out []duplicates.Candidate[int]
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		title := strings.TrimSpace(scanner.Text())
		if title == "" {
			continue
		}
		out = append(out, duplicates.Candidate[int]{
			ID:      strconv.Itoa(line),
			Title:   title,
			Payload: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	return out, nil
}

type matchOutput struct {
	Line  int           `json:"line"`
	Title string        `json:"title"`
	Score float64       `json:"score"`
	Parts *scoreParts `json:"parts,omitempty"`
}

type scoreParts struct {
	Word float64 `json:"word_overlap"`
	Edit float64 `json:"edit_distance"`
}

func rank(engine *duplicates.Engine[int], opts *options, candidates []duplicates.Candidate[int], w io.Writer) error {
	matches := engine.Rank(opts.query, candidates, opts.threshold)

	results := make([]matchOutput, 0, len(matches))
	for _, m := range matches {
		out := matchOutput{Line: m.Candidate.Payload, Title: m.Candidate.Title, Score: m.Score}
		if opts.explain {
			s := engine.Score(opts.query, m.Candidate.Title)
			out.Parts = &scoreParts{Word: s.WordOverlap, Edit: s.EditDistance}
		}
		results = append(results, out)
	}

	if opts.output == "json" {
		return writeJSON(w, results)
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "No similar titles among %d candidates\n", len(candidates))
		return nil
	}
	for _, r := range results {
		if r.Parts != nil {
			fmt.Fprintf(w, "%.4f  (word %.4f, edit %.4f)  %d: %s\n", r.Score, r.Parts.Word, r.Parts.Edit, r.Line, r.Title)
		} else {
			fmt.Fprintf(w, "%.4f  %d: %s\n", r.Score, r.Line, r.Title)
		}
	}
	return nil
}

type compareOutput struct {
	duplicates.Score
	Duplicate bool `json:"duplicate"`
}

func compare(engine *duplicates.Engine[int], opts *options, w io.Writer) error {
	a, b := opts.args[0], opts.args[1]
	out := compareOutput{
		Score:     engine.Score(a, b),
		Duplicate: engine.IsDuplicate(a, b),
	}

	if opts.output == "json" {
		return writeJSON(w, out)
	}
	fmt.Fprintf(w, "Score:     %.4f\n", out.Combined)
	if opts.explain {
		fmt.Fprintf(w, "Word:      %.4f\n", out.WordOverlap)
		fmt.Fprintf(w, "Edit:      %.4f\n", out.EditDistance)
	}
	fmt.Fprintf(w, "Duplicate: %t\n", out.Duplicate)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
