package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/pkg/records"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show or update the authenticated profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		ctx := context.Background()

		sets, _ := cmd.Flags().GetStringArray("set")
		if len(sets) > 0 {
			rec, err := client.MeRecord(ctx)
			if err != nil {
				return err
			}
			changes, err := applyEdits(rec, sets)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Println("Nothing to update")
				return nil
			}
			if _, err := client.UpdateMe(ctx, changes); err != nil {
				return err
			}
			fmt.Printf("Updated %d field(s)\n", len(changes))
		}

		rec, err := client.MeRecord(ctx)
		if err != nil {
			return err
		}
		printRecord(rec, false)
		return nil
	},
}

// applyEdits folds key=value pairs into a form built from the record and
// returns the minimal change-set.
func applyEdits(rec *records.Record, sets []string) (map[string]any, error) {
	form := records.Build(rec)
	edited := make(map[string]any, len(form.Initial))
	for k, v := range form.Initial {
		edited[k] = v
	}

	for _, pair := range sets {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		desc, ok := form.Descriptor(key)
		if !ok {
			return nil, &records.ValidationError{Key: key, Reason: "no such editable field"}
		}
		if desc.ReadOnly {
			return nil, &records.ValidationError{Key: key, Reason: "field is read-only"}
		}
		coerced := coerceInput(desc, value)
		if err := records.ValidateEdit(desc, coerced); err != nil {
			return nil, err
		}
		edited[key] = coerced
	}

	return records.Diff(rec, edited, form.Descriptors), nil
}

func splitPair(pair string) (key, value string, err error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("expected key=value, got %q", pair)
}

// coerceInput converts a command-line string into the editable shape the
// codec expects (bool for boolean fields, string otherwise).
func coerceInput(desc records.FieldDescriptor, value string) any {
	if desc.Input == records.InputBoolean {
		switch value {
		case "true", "1", "yes", "on":
			return true
		default:
			return false
		}
	}
	return value
}

func printRecord(rec *records.Record, showRaw bool) {
	form := records.Build(rec)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tVALUE")
	for _, d := range form.Descriptors {
		value := form.Initial[d.Key]
		flag := ""
		if d.ReadOnly {
			flag = " (read-only)"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%v\n", d.Label, flag, d.Input, value)
	}
	w.Flush()

	if showRaw {
		fmt.Println("\nRaw record:")
		fmt.Println(rec.Raw())
	}
}

func init() {
	whoamiCmd.Flags().StringArray("set", nil, "Update a profile field (key=value, repeatable)")
	rootCmd.AddCommand(whoamiCmd)
}
