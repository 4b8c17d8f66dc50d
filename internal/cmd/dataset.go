package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpumuk/lazychart/internal/dataset"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for values the charts cannot draw.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return fmt.Errorf("invalid dataset:\n%w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bar categories, %d line points, %d pie slices\n",
				len(ds.Bar), len(ds.Line), len(ds.Pie))
			return err
		},
	}
}

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE.xlsx",
		Short: "Write the dataset as an XLSX workbook.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create workbook: %w", err)
			}
			if err := dataset.WriteXLSX(file, ds); err != nil {
				_ = file.Close()
				return fmt.Errorf("write workbook: %w", err)
			}
			return file.Close()
		},
	}
}
