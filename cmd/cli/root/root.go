package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// APIBase is the base URL of the storefront server, set via --api.
var APIBase string

var RootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront admin CLI",
	Long:  "Command line interface for the storefront posts API",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&APIBase, "api", "http://localhost:8080", "base URL of the storefront server")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func GetRoot() *cobra.Command {
	return RootCmd
}
