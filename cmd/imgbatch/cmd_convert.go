package main

import (
	"fmt"

	"github.com/fhuszti/imgbatch/internal/imaging"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	src string
	dst string
	to  string
}

func newConvertCommand() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the images of a directory to another format",
		Long: `Convert every image directly inside a directory.

--to png picks up .jpg/.jpeg files, --to jpeg picks up .png files (transparency
is flattened onto white) and --to webp picks up all three. Files whose target
already exists are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return convertE(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.src, "src", "./imgs", "directory to read images from")
	cmd.Flags().StringVar(&opts.dst, "dst", "", "directory to write converted images to (default: --src)")
	cmd.Flags().StringVar(&opts.to, "to", "png", "target format: png, jpeg or webp")

	return cmd
}

func convertE(cmd *cobra.Command, opts *convertOptions) error {
	target, err := imaging.ParseFormat(opts.to)
	if err != nil {
		return err
	}

	report, err := imaging.ConvertDir(contextOrBackground(cmd), opts.src, opts.dst, target)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "converted %d file(s), %d skipped, %d failed\n",
		report.Converted, report.Skipped, report.Failed)
	return nil
}
