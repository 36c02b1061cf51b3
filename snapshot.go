package main

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"whichx/classifier"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored model as JSON to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, s, _, err := openModel(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return json.NewEncoder(cmd.OutOrStdout()).Encode(m.Export())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace the stored model with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		snap := classifier.NewSnapshot()
		if err := json.Unmarshal(b, snap); err != nil {
			return err
		}

		m, s, _, err := openModel(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := m.Import(snap); err != nil {
			return err
		}
		if err := m.Sync(cmd.Context()); err != nil {
			return err
		}
		log.WithField("model", m.Name).Infof("Imported %d labels", len(m.Labels()))
		return nil
	},
}
