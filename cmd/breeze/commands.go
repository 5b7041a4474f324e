package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gobreeze/breeze/profile"
	"github.com/gobreeze/breeze/report"
	"github.com/gobreeze/breeze/schema"
)

func accountCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the account summary",
		Long:  "Show the account summary. Also serves as a credential check.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			summary, err := c.GetAccountSummary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s.breezechms.com), id %s, created %s\n",
				summary.Name, summary.Subdomain, summary.ID, summary.CreatedOn)
			return nil
		},
	}
}

func fieldsCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the account's profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			sections, err := c.ProfileFields(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(sections)
			}
			for _, sec := range sections {
				fmt.Println(sec.Name)
				for _, f := range sec.Fields {
					fmt.Printf("  %-12s %-10s %s\n", f.ID, f.Type, f.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the schema as JSON")
	return cmd
}

// snapshot is the on-disk capture format: the schema and the people
// list exactly as the service served them, plus a timestamp.
type snapshot struct {
	TakenAt string          `json:"taken_at"`
	Fields  json.RawMessage `json:"fields"`
	People  json.RawMessage `json:"people"`
}

func snapshotCmd(g *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the member database to a file",
		Long: `Capture the profile-field schema and every person's full profile
to a JSON file, for later comparison with the compare command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			fields, err := c.ProfileFieldsRaw(ctx)
			if err != nil {
				return err
			}
			people, err := c.ListPeopleRaw(ctx)
			if err != nil {
				return err
			}

			snap := snapshot{
				TakenAt: timestamp(),
				Fields:  fields,
				People:  people,
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func compareCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare REFERENCE [CURRENT]",
		Short: "Report profile changes between two snapshots",
		Long: `Report what changed between a reference snapshot file and a current
one. With a single argument the current side is fetched live from the
service. Output lists, per person, the values removed since the
reference and the values added.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refIndex, refPeople, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			var curIndex *schema.Index
			var curPeople []profile.Raw
			if len(args) == 2 {
				curIndex, curPeople, err = loadSnapshot(args[1])
			} else {
				curIndex, curPeople, err = fetchLive(cmd, g)
			}
			if err != nil {
				return err
			}

			diffs, err := report.Compare(refIndex, curIndex, refPeople, curPeople)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(diffs)
			}
			printDiffs(diffs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}

func loadSnapshot(path string) (*schema.Index, []profile.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return decodeSnapshot(snap.Fields, snap.People)
}

func fetchLive(cmd *cobra.Command, g *globalFlags) (*schema.Index, []profile.Raw, error) {
	c, err := g.client()
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	fields, err := c.ProfileFieldsRaw(ctx)
	if err != nil {
		return nil, nil, err
	}
	people, err := c.ListPeopleRaw(ctx)
	if err != nil {
		return nil, nil, err
	}
	return decodeSnapshot(fields, people)
}

func decodeSnapshot(fields, people json.RawMessage) (*schema.Index, []profile.Raw, error) {
	var sections []schema.Section
	if err := json.Unmarshal(fields, &sections); err != nil {
		return nil, nil, fmt.Errorf("decoding schema: %w", err)
	}
	idx, err := schema.BuildIndex(sections)
	if err != nil {
		return nil, nil, err
	}
	var raws []profile.Raw
	if err := json.Unmarshal(people, &raws); err != nil {
		return nil, nil, fmt.Errorf("decoding people: %w", err)
	}
	return idx, raws, nil
}

func printDiffs(diffs []report.PersonDiff) {
	if len(diffs) == 0 {
		fmt.Println("No changes.")
		return
	}
	for _, person := range diffs {
		fmt.Printf("%s:\n", person.Person)
		for _, field := range person.Fields {
			fmt.Printf("  %s:\n", field.Field)
			for _, v := range field.Removed {
				fmt.Printf("    - %s\n", v)
			}
			for _, v := range field.Added {
				fmt.Printf("    + %s\n", v)
			}
		}
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
