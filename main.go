package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"whichx/config"
	"whichx/model"
	"whichx/store"
)

var rootCmd = &cobra.Command{
	Use:   "whichx",
	Short: "Naive Bayes text classifier",
	Long:  `whichx learns word frequencies from labeled descriptions and predicts the label of new text`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lvl, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	rootCmd.PersistentFlags().String("config", os.Getenv("WHICHX_CONFIG"), "path to a TOML config file")
	rootCmd.PersistentFlags().String("model", "", "model name (overrides MODEL_NAME)")
	rootCmd.PersistentFlags().String("backend", "", "snapshot store: memory, disk, redis, postgres or sqlite")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if name, _ := cmd.Flags().GetString("model"); name != "" {
		cfg.ModelName = name
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Backend = backend
	}
	return cfg, nil
}

// openModel builds the configured store and loads the named model from it.
func openModel(ctx context.Context, cmd *cobra.Command) (*model.Model, store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Backend == "memory" && cmd.Name() != "serve" {
		log.WithField("command", cmd.Name()).Warn("The memory backend is lost when this command exits")
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	m := model.New(cfg.ModelName, s, cfg.StopWords)
	if err := m.Load(ctx); err != nil {
		s.Close()
		return nil, nil, nil, err
	}
	return m, s, cfg, nil
}
