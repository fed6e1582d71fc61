package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "horobot",
		Short: "Daily zodiac compatibility digest for the team chat",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(sendCmd())
	root.AddCommand(matrixCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())

	return root
}

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Fetch today's data and send the digest once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend()
		},
	}
}

func matrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Print today's compatibility matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix()
		},
	}
}

func summaryCmd() *cobra.Command {
	var band string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print relationship lines for one percentage band",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(band)
		},
	}

	cmd.Flags().StringVar(&band, "band", "100%", "percentage band (e.g. 100%, -100%)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the status HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon with daily scheduler and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
