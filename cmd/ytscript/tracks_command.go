package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ytscript/internal/language"
	"ytscript/internal/services"
	"ytscript/internal/youtube"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <video>",
		Short: "List the caption tracks a video offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := youtube.ParseReference(args[0])
			if err != nil {
				return services.Wrap(services.ErrInvalidReference, "parse reference", fmt.Sprintf("%q", args[0]), err)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx := services.WithVideoID(services.WithNewRequestID(cmd.Context()), videoID)
			video, err := ctx.deps.newMetadata(cfg, logger).Lookup(runCtx, videoID)
			if err != nil {
				return services.Wrap(services.ErrMetadataUnavailable, "lookup metadata", videoID, err)
			}
			if !video.CaptionsKnown {
				return services.Wrap(services.ErrMetadataUnavailable, "list caption tracks", videoID,
					fmt.Errorf("caption tracks could not be read for %s", video.URL()))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, video.Title)
			if byline := videoByline(video); byline != "" {
				fmt.Fprintln(out, byline)
			}
			fmt.Fprintf(out, "%s\n\n", video.URL())
			if len(video.Captions) == 0 {
				fmt.Fprintln(out, "No caption tracks available")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Code", "Language", "Kind"},
				trackRows(video.Captions),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// videoByline renders "author · duration", omitting whichever part is unknown.
func videoByline(video youtube.Video) string {
	parts := make([]string, 0, 2)
	if author := strings.TrimSpace(video.Author); author != "" {
		parts = append(parts, author)
	}
	if video.Duration > 0 {
		parts = append(parts, video.Duration.Round(time.Second).String())
	}
	return strings.Join(parts, " · ")
}

func trackRows(tracks []youtube.CaptionTrack) [][]string {
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		kind := "manual"
		if track.Generated {
			kind = "auto-generated"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.LanguageCode,
			language.DisplayName(track.LanguageCode),
			kind,
		})
	}
	return rows
}
