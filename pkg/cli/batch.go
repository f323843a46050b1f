package cli

import (
	"fmt"
	"os"
	"sort"

	urfave "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
)

const batchParallelism = 4

var batchCmd = &urfave.Command{
	Name:      "batch",
	Usage:     "Score multiple content files and compare the results",
	ArgsUsage: "FILE [FILE...]",
	Flags: []urfave.Flag{
		profileFlag,
		saveFlag,
	},
	Action: runBatch,
}

// batchItem pairs one input file with its assessment.
type batchItem struct {
	File   string                   `json:"file"`
	Result *assess.AssessmentResult `json:"result"`
}

// batchReport is the comparison summary across all inputs.
type batchReport struct {
	Profile string       `json:"profile"`
	Items   []batchItem  `json:"items"`
	Summary batchSummary `json:"summary"`
}

type batchSummary struct {
	Files       int     `json:"files"`
	MeanOverall float64 `json:"mean_overall"`
	Best        string  `json:"best"`
	Worst       string  `json:"worst"`
}

func runBatch(c *urfave.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("no content files given")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	items := make([]batchItem, len(files))
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(batchParallelism)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			b, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f, err)
			}
			items[i] = batchItem{
				File:   f,
				Result: engine.Evaluate(assess.Content{Text: string(b), Metadata: assess.Metadata{Source: f}}),
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if c.Bool(saveFlag.Name) {
		s := getConfig(c).Store
		for _, item := range items {
			if err := s.SaveAssessment(c.Context, item.Result); err != nil {
				return err
			}
		}
	}

	return encode(batchReport{
		Profile: engine.Profile().Name,
		Items:   items,
		Summary: summarizeBatch(items),
	})
}

func summarizeBatch(items []batchItem) batchSummary {
	ranked := make([]batchItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
	})

	total := 0.0
	for _, item := range items {
		total += float64(item.Result.OverallScore)
	}

	return batchSummary{
		Files:       len(items),
		MeanOverall: total / float64(len(items)),
		Best:        ranked[0].File,
		Worst:       ranked[len(ranked)-1].File,
	}
}
