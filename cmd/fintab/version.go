package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flag := cmd.Flag("output"); flag != nil && flag.Changed {
			return api.Output(struct {
				Version string `json:"version" yaml:"version"`
				Go      string `json:"go" yaml:"go"`
				Commit  string `json:"commit" yaml:"commit"`
				Date    string `json:"date" yaml:"date"`
			}{version.GitRelease, version.GoInfo, version.GitCommit, version.GitCommitDate})
		}
		fmt.Printf("fintab %s\n", version.GitRelease)
		fmt.Printf("  Go:     %s\n", version.GoInfo)
		fmt.Printf("  Commit: %s\n", version.GitCommit)
		fmt.Printf("  Date:   %s\n", version.GitCommitDate)
		return nil
	},
}
