package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/doctor"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

func newDoctorCmd() *cobra.Command {
	var sourceDir, configPath, apiKey, envFile string

	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			source := strings.TrimSpace(sourceDir)
			if source == "" {
				var err error
				if source, err = defaultSourceDir(); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, source)

			results := doctor.CheckBundle(source)
			if strings.TrimSpace(configPath) != "" {
				results = append(results, doctor.CheckConfigFile(configPath))
			}
			results = append(results, doctor.CheckAPIKey(apiKey, envFile))
			if len(args) == 1 {
				results = append(results, doctor.CheckInstallDir(args[0]))
				store, err := openStore()
				if err != nil {
					return err
				}
				results = append(results, doctor.CheckRegistrations(store, args[0], uninstallerFlavor())...)
			}

			for _, r := range results {
				printResult(out, r)
			}
			if doctor.Failed(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return fmt.Errorf(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source-dir", "", messages.InstallFlagSourceDir)
	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	cmd.Flags().StringVar(&apiKey, "api-key", "", messages.InstallFlagAPIKey)
	cmd.Flags().StringVar(&envFile, "env-file", "", messages.InstallFlagEnvFile)
	return cmd
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
