package main

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <description>...",
	Short: "Print the most probable label of a description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().Bool("explain", false, "print the chance of every label as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return err
	}
	description := strings.Join(args, " ")

	m, s, _, err := openModel(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if explain {
		scores, err := m.Scores(description)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	label, ok, err := m.Classify(description)
	if err != nil {
		return err
	}
	if !ok {
		// an empty line, not a failure
		log.WithField("model", m.Name).Warn("No label for this description")
	}
	fmt.Fprintln(out, label)
	return nil
}
