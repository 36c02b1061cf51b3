package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"whichx/classifier"
	"whichx/processor"
)

var trainCmd = &cobra.Command{
	Use:   "train <file.yaml>",
	Short: "Register labels and learn examples from a YAML training set",
	Long: `Reads a training set of the form

  labels: [cat, dog]
  examples:
    - label: cat
      description: meow purr sits on lap

and saves the updated model to the configured store.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().Bool("skip-invalid", false, "log and skip examples that cannot be learned")
}

type trainingSet struct {
	Labels   []string             `yaml:"labels"`
	Examples []*processor.Example `yaml:"examples"`
}

func readTrainingSet(path string) (*trainingSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ts := new(trainingSet)
	if err := yaml.Unmarshal(b, ts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	skipInvalid, err := cmd.Flags().GetBool("skip-invalid")
	if err != nil {
		return err
	}
	ts, err := readTrainingSet(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m, s, _, err := openModel(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, l := range ts.Labels {
		err := m.AddLabels(l)
		// already known labels are fine when training an existing model
		if errors.Is(err, classifier.ErrDuplicateLabel) {
			continue
		}
		if err != nil {
			return err
		}
	}

	learned := 0
	for i, e := range ts.Examples {
		if err := m.AddData(e.Label, e.Description); err != nil {
			if !skipInvalid {
				return fmt.Errorf("example %d: %w", i, err)
			}
			log.WithField("label", e.Label).Warnf("Skipping example %d: %s", i, err)
			continue
		}
		learned++
	}

	if err := m.Sync(ctx); err != nil {
		return err
	}
	log.WithField("model", m.Name).Infof("Learned %d of %d examples", learned, len(ts.Examples))
	return nil
}
