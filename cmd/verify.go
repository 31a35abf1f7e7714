package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathaxy/internal/questionset"
)

// errVerifyFailed makes the command exit non-zero after printing violations.
var errVerifyFailed = errors.New("question set failed verification")

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check an exported question set against its level's rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		format := questionset.FormatJSON
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
			format = questionset.FormatYAML
		}

		set, err := questionset.Decode(data, format)
		if err != nil {
			return err
		}
		report := questionset.Verify(set)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "level %d: %d questions, %d with a zero addend, %d two-digit sums\n",
				report.Level, report.Stats.Count, report.Stats.ZeroAddend, report.Stats.TwoDigitSum)
			for _, v := range report.Violations {
				fmt.Fprintf(out, "  ✗ %s\n", v)
			}
			if report.OK() {
				fmt.Fprintln(out, "  ✓ ok")
			}
		}

		if !report.OK() {
			return errVerifyFailed
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().Bool("json", false, "Print the report as JSON")
}
