package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	urfave "github.com/urfave/cli/v2"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
	"github.com/s8ken/SYMBI-Resonate/pkg/net"
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
)

var (
	fileFlag = &urfave.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to the content file (reads stdin when omitted)",
	}

	urlFlag = &urfave.StringFlag{
		Name:  "url",
		Usage: "URL of the content to fetch and assess",
	}

	sourceFlag = &urfave.StringFlag{
		Name:  "source",
		Usage: "Content source recorded in the assessment metadata",
	}

	authorFlag = &urfave.StringFlag{
		Name:  "author",
		Usage: "Content author recorded in the assessment metadata",
	}

	contextFlag = &urfave.StringFlag{
		Name:  "context",
		Usage: "Content context recorded in the assessment metadata",
	}

	saveFlag = &urfave.BoolFlag{
		Name:  "save",
		Usage: "Persist the assessment in the local database",
	}

	limitFlag = &urfave.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of records to return",
		Value: 25,
	}

	showIDFlag = &urfave.StringFlag{
		Name:     "id",
		Usage:    "ID of a saved assessment",
		Required: true,
	}

	assessCmd = &urfave.Command{
		Name:  "assess",
		Usage: "Score one piece of content on the five dimensions",
		Flags: []urfave.Flag{
			fileFlag,
			urlFlag,
			profileFlag,
			sourceFlag,
			authorFlag,
			contextFlag,
			saveFlag,
		},
		Action: runAssess,
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List saved assessments, newest first",
				Flags:  []urfave.Flag{profileFlag, limitFlag},
				Action: runAssessList,
			},
			{
				Name:   "show",
				Usage:  "Print one saved assessment in full",
				Flags:  []urfave.Flag{showIDFlag},
				Action: runAssessShow,
			},
		},
	}
)

func newEngine(c *urfave.Context) (*assess.Engine, error) {
	cfg := getConfig(c)
	name := c.String(profileFlag.Name)
	if !c.IsSet(profileFlag.Name) && cfg.Profile != "" {
		name = cfg.Profile
	}
	prof, err := profile.Resolve(name, cfg.Rules)
	if err != nil {
		return nil, err
	}
	return assess.New(cfg.Rules, prof)
}

func readContent(c *urfave.Context) (string, error) {
	if u := c.String(urlFlag.Name); u != "" {
		return net.FetchText(c.Context, u)
	}
	if p := c.String(fileFlag.Name); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func runAssess(c *urfave.Context) error {
	text, err := readContent(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	source := c.String(sourceFlag.Name)
	if source == "" {
		source = c.String(urlFlag.Name)
	}

	result := engine.Evaluate(assess.Content{
		Text: text,
		Metadata: assess.Metadata{
			Source:  source,
			Author:  c.String(authorFlag.Name),
			Context: c.String(contextFlag.Name),
		},
	})

	if c.Bool(saveFlag.Name) {
		if err := getConfig(c).Store.SaveAssessment(c.Context, result); err != nil {
			return err
		}
		slog.Debug("assessment saved", "id", result.ID)
	}

	return encode(result)
}

func runAssessList(c *urfave.Context) error {
	// Only filter by profile when one is named explicitly.
	name := ""
	if c.IsSet(profileFlag.Name) {
		name = c.String(profileFlag.Name)
	}

	list, err := getConfig(c).Store.ListAssessments(c.Context, name, c.Int(limitFlag.Name))
	if err != nil {
		return err
	}
	return encode(list)
}

func runAssessShow(c *urfave.Context) error {
	r, err := getConfig(c).Store.GetAssessment(c.Context, c.String(showIDFlag.Name))
	if err != nil {
		return err
	}
	return encode(r)
}
