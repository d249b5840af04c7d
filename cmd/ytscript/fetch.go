package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ytscript/internal/extractor"
	"ytscript/internal/services"
)

type fetchOptions struct {
	video          string
	languages      []string
	extraLanguages []string
	output         string
	timestamps     bool
	backend        string
}

func runFetch(cmd *cobra.Command, ctx *commandContext, opts fetchOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if opts.timestamps {
		cfg.Output.Timestamps = true
	}
	if backend := strings.ToLower(strings.TrimSpace(opts.backend)); backend != "" {
		cfg.Transcript.Backend = backend
		if err := cfg.Validate(); err != nil {
			return services.Wrap(services.ErrConfiguration, "select backend", "", err)
		}
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	service, err := ctx.deps.newService(cfg, logger)
	if err != nil {
		return err
	}

	runCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	runCtx = services.WithNewRequestID(runCtx)

	languages := append(append([]string(nil), opts.languages...), opts.extraLanguages...)
	result, err := service.Run(runCtx, extractor.Request{
		Reference: opts.video,
		Languages: languages,
		Output:    strings.TrimSpace(opts.output),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, result, shouldColorize(out))
	return nil
}
