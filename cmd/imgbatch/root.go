package main

import (
	"fmt"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// flagKeys maps persistent flags onto the configuration keys they override.
var flagKeys = map[string]string{
	"provider":   "PROVIDER",
	"tasks":      "TASK_FILE",
	"source-dir": "SOURCE_DIR",
	"output-dir": "OUTPUT_DIR",
	"temp-dir":   "TEMP_DIR",
	"backend":    "OUTPUT_BACKEND",
	"delay":      "TASK_DELAY",
	"resume":     "RESUME",
	"resize":     "RESIZE_ENABLED",
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgbatch",
		Short: "Batch image generation and editing against hosted image APIs",
		Long: `imgbatch reads a CSV task list and runs each text-to-image or image-edit
task against the configured provider, one at a time, saving every result
under {index}.{ext}.

Settings come from the environment or a .env file; flags override both.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("provider", "", "image provider: ark or dashscope")
	flags.String("tasks", "", "path of the CSV task list")
	flags.String("source-dir", "", "directory holding edit source images")
	flags.String("output-dir", "", "directory generated images are written to")
	flags.String("temp-dir", "", "directory for resized source images")
	flags.String("backend", "", "output backend: local or minio")
	flags.Duration("delay", 0, "minimum delay between provider calls")
	flags.Bool("resume", false, "skip tasks whose output already exists")
	flags.Bool("resize", true, "scale edit sources into the accepted size range")

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newEnqueueCommand())
	cmd.AddCommand(newWorkerCommand())
	cmd.AddCommand(newConvertCommand())

	return cmd
}

// bindFlags hands the persistent flags to viper so that config.Load sees them.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func execute() error {
	return newRootCommand().Execute()
}
