package cli

import (
	"fmt"
	"io"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// printError writes err as one red line. Input errors get a usage hint.
func printError(w io.Writer, rootCmd *cobra.Command, err error) {
	fmt.Fprintln(w, ui.ErrorColor("Error: "+err.Error()))
	if apperrors.ClassOf(err) == apperrors.ClassInput {
		fmt.Fprintln(w, ui.DetailColor(fmt.Sprintf("Run '%s --help' for usage.", rootCmd.Name())))
	}
}
