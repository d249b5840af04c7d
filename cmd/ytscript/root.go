package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytscript/internal/youtube"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWithDeps(defaultDeps())
}

func newRootCommandWithDeps(deps commandDeps) *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string
	var opts fetchOptions

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag, deps)

	rootCmd := &cobra.Command{
		Use:   "ytscript <video> [-l lang ...] [-o file]",
		Short: "Save a YouTube video's transcript as a text file",
		Long: `Download the transcript of a YouTube video and save it as
"{title}_{video id}.txt" in the transcripts directory.

The video may be a watch URL, a youtu.be share link, or a bare video ID.`,
		Example: `  ytscript https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytscript dQw4w9WgXcQ -l de en
  ytscript https://youtu.be/dQw4w9WgXcQ -o rickroll.txt --timestamps`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          fetchArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			video, extra := splitVideoArgs(args)
			opts.video = video
			opts.extraLanguages = extra
			return runFetch(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")

	rootCmd.Flags().StringSliceVarP(&opts.languages, "languages", "l", nil, "Preferred transcript languages in order (e.g. -l de en)")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the transcript to this exact path")
	rootCmd.Flags().BoolVar(&opts.timestamps, "timestamps", false, "Prefix each line with its start time in seconds")
	rootCmd.Flags().StringVar(&opts.backend, "backend", "", "Transcript backend (innertube, timedtext)")

	rootCmd.AddCommand(newTracksCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// fetchArgs requires a video and accepts further words only as languages
// following -l, so "ytscript VIDEO -l de en" works like a multi-value flag.
func fetchArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("requires a video URL or ID")
	}
	if len(args) > 1 && !cmd.Flags().Changed("languages") {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	return nil
}

// splitVideoArgs picks the first argument that parses as a video reference and
// returns the remaining arguments as extra languages. When none parses, the
// first argument is treated as the video so the error names it.
func splitVideoArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	idx := 0
	for i, arg := range args {
		if _, err := youtube.ParseReference(arg); err == nil {
			idx = i
			break
		}
	}
	extra := make([]string, 0, len(args)-1)
	extra = append(extra, args[:idx]...)
	extra = append(extra, args[idx+1:]...)
	return args[idx], extra
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
