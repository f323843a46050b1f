package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/s8ken/SYMBI-Resonate/pkg/audit"
)

var (
	assessmentIDFlag = &urfave.StringSliceFlag{
		Name:  "id",
		Usage: "Assessment ID to include (repeatable, at least one)",
	}

	purposeFlag = &urfave.StringFlag{
		Name:  "purpose",
		Usage: "Purpose the ticket is issued for (required)",
	}

	retentionFlag = &urfave.IntFlag{
		Name:  "retention",
		Usage: "Maximum retention in days",
		Value: 90,
	}

	allowRawFlag = &urfave.BoolFlag{
		Name:  "allow-raw",
		Usage: "Permit raw content access",
	}

	allowTrainingFlag = &urfave.BoolFlag{
		Name:  "allow-training",
		Usage: "Permit training use (requires --allow-raw)",
	}

	signerFlag = &urfave.StringSliceFlag{
		Name:  "signer",
		Usage: "Signer name (repeatable)",
		Value: urfave.NewStringSlice("assessment-engine"),
	}

	ticketCmd = &urfave.Command{
		Name:  "ticket",
		Usage: "Issue a signed context bridge ticket over saved assessments",
		Flags: []urfave.Flag{
			assessmentIDFlag,
			purposeFlag,
			retentionFlag,
			allowRawFlag,
			allowTrainingFlag,
			signerFlag,
			saveFlag,
		},
		Action: runTicket,
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List saved tickets, newest first",
				Flags:  []urfave.Flag{limitFlag},
				Action: runTicketList,
			},
		},
	}

	ticketFileFlag = &urfave.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a ticket JSON file",
	}

	ticketIDFlag = &urfave.StringFlag{
		Name:  "id",
		Usage: "ID of a saved ticket",
	}

	validateCmd = &urfave.Command{
		Name:  "validate",
		Usage: "Validate a context bridge ticket bundle",
		Flags: []urfave.Flag{
			ticketFileFlag,
			ticketIDFlag,
		},
		Action: runValidate,
	}
)

func runTicket(c *urfave.Context) error {
	cfg := getConfig(c)

	gen := audit.NewGenerator(audit.DefaultProvenance(cfg.Rules))
	b := audit.NewTicketBuilder(gen).WithScope(audit.Scope{
		AllowRaw:         c.Bool(allowRawFlag.Name),
		AllowTraining:    c.Bool(allowTrainingFlag.Name),
		MaxRetentionDays: c.Int(retentionFlag.Name),
		Purpose:          c.String(purposeFlag.Name),
	})

	for _, id := range c.StringSlice(assessmentIDFlag.Name) {
		r, err := cfg.Store.GetAssessment(c.Context, id)
		if err != nil {
			return fmt.Errorf("loading assessment %s: %w", id, err)
		}
		b.AddAssessment(r)
	}
	for _, s := range c.StringSlice(signerFlag.Name) {
		b.WithSigner(s)
	}

	ticket, err := b.Build()
	if err != nil {
		return err
	}

	if c.Bool(saveFlag.Name) {
		if err := cfg.Store.SaveTicket(c.Context, ticket, time.Now()); err != nil {
			return err
		}
		slog.Debug("ticket saved", "id", ticket.ID)
	}

	return encode(ticket)
}

func runTicketList(c *urfave.Context) error {
	list, err := getConfig(c).Store.ListTickets(c.Context, c.Int(limitFlag.Name))
	if err != nil {
		return err
	}
	return encode(list)
}

func runValidate(c *urfave.Context) error {
	ticket, err := loadTicket(c)
	if err != nil {
		return err
	}

	result := audit.ValidateBundle(ticket)
	if err := encode(result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("ticket %s failed validation with %d issue(s)", ticket.ID, len(result.Issues))
	}
	return nil
}

func loadTicket(c *urfave.Context) (*audit.ContextBridgeTicket, error) {
	if p := c.String(ticketFileFlag.Name); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading ticket file: %w", err)
		}
		var t audit.ContextBridgeTicket
		if err := json.Unmarshal(b, &t); err != nil {
			return nil, fmt.Errorf("parsing ticket file: %w", err)
		}
		return &t, nil
	}
	if id := c.String(ticketIDFlag.Name); id != "" {
		return getConfig(c).Store.GetTicket(c.Context, id)
	}
	return nil, fmt.Errorf("either --file or --id is required")
}
