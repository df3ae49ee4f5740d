// ABOUTME: Root CLI command and global flags for VocalMart
// ABOUTME: Wires all subcommands and handles verbose/quiet/format flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗   ██╗ ██████╗  ██████╗ █████╗ ██╗     ███╗   ███╗ █████╗ ██████╗ ████████╗
██║   ██║██╔═══██╗██╔════╝██╔══██╗██║     ████╗ ████║██╔══██╗██╔══██╗╚══██╔══╝
██║   ██║██║   ██║██║     ███████║██║     ██╔████╔██║███████║██████╔╝   ██║
╚██╗ ██╔╝██║   ██║██║     ██╔══██║██║     ██║╚██╔╝██║██╔══██║██╔══██╗   ██║
 ╚████╔╝ ╚██████╔╝╚██████╗██║  ██║███████╗██║ ╚═╝ ██║██║  ██║██║  ██║   ██║
  ╚═══╝   ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocalmart",
		Short: "Voice-driven product discovery assistant",
		Long: banner + `
VocalMart is a voice-driven product discovery assistant. It matches
spoken (or typed) product requests against a catalog using embedding
similarity, then answers conversationally.

Ask one-shot questions, hold a chat session, browse the catalog, or
run it as an MCP server for LLM agents.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewProductsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
