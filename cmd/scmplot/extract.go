package main

import (
	"github.com/spf13/cobra"

	"github.com/RMahshie/scmplot/internal/extract"
	"github.com/RMahshie/scmplot/internal/storage"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "extract [glob]",
		Short: "Convert receiver logs into setting,PDR csv files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glob := cfg.Extract.Glob
			if len(args) == 1 {
				glob = args[0]
			}
			_, err := extract.Run(glob, storage.NewFileStore(""))
			return err
		},
	})
}
