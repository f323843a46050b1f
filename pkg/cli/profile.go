package cli

import (
	urfave "github.com/urfave/cli/v2"

	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
)

var (
	profileCmd = &urfave.Command{
		Name:  "profile",
		Usage: "Inspect calibration profiles",
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List the shipped profile names",
				Action: runProfileList,
			},
			{
				Name:   "show",
				Usage:  "Print one profile in full",
				Flags:  []urfave.Flag{profileFlag},
				Action: runProfileShow,
			},
		},
	}

	rulesCmd = &urfave.Command{
		Name:    "rules",
		Aliases: []string{"rule"},
		Usage:   "Inspect the pattern rule table",
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "Print every rule in declaration order",
				Action: runRulesList,
			},
			{
				Name:   "hash",
				Usage:  "Print the rule table hash receipts refer to",
				Action: runRulesHash,
			},
		},
	}
)

func runProfileList(c *urfave.Context) error {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var out []entry
	for _, name := range profile.Names() {
		p, err := profile.Get(name)
		if err != nil {
			return err
		}
		out = append(out, entry{Name: p.Name, Description: p.Description})
	}
	return encode(out)
}

func runProfileShow(c *urfave.Context) error {
	p, err := profile.Resolve(c.String(profileFlag.Name), getConfig(c).Rules)
	if err != nil {
		return err
	}
	return encode(p)
}

func runRulesList(c *urfave.Context) error {
	return encode(getConfig(c).Rules.Rules())
}

func runRulesHash(c *urfave.Context) error {
	return encode(map[string]string{"hash": getConfig(c).Rules.Hash()})
}
