package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// errInvalidForm signals a completed validation with failures.
var errInvalidForm = errors.New("form is invalid")

var rootCmd = &cobra.Command{
	Use:   "formguard",
	Short: "Formguard - declarative form validation",
	Long: `Formguard evaluates declarative validation rules attached to form fields.

Forms are described as YAML documents listing their fields, values and rule
attributes. Messages are localized from YAML or JSON locale files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, errInvalidForm):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
