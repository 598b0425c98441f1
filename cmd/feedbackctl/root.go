package main

import (
	"os"

	"github.com/spf13/cobra"

	"medfeedback/internal/categorizer"
	"medfeedback/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Patient feedback categorization tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("policy", "", "Path to a YAML scoring policy (overrides POLICY_FILE env var)")

	root.AddCommand(newCategorizeCmd())
	root.AddCommand(newPolicyCmd())
	return root
}

// resolvePolicy loads the policy from --policy, then POLICY_FILE, then the defaults.
func resolvePolicy(cmd *cobra.Command) (*categorizer.Policy, error) {
	path, _ := cmd.Flags().GetString("policy")
	if path == "" {
		path = os.Getenv("POLICY_FILE")
	}
	return config.LoadPolicy(path)
}
