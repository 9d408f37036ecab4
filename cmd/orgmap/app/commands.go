package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/orgmap/pkg/constants"
	"github.com/agentstation/orgmap/pkg/errors"
)

// CreateLookupCommand creates the lookup command.
func (a *App) CreateLookupCommand() *cobra.Command {
	var byDomain bool
	var showProvenance bool

	cmd := &cobra.Command{
		Use:   "lookup <name|domain>",
		Short: "Reconcile a canonical record for an organization",
		Long: `Lookup reconciles a single organization record from public data sources.

The argument is an organization name by default; pass --domain to look the
organization up by its website domain instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.LookupTimeout)
			defer cancel()
			query := args[0]

			lookup := client.LookupName
			if byDomain {
				lookup = client.LookupDomain
			}
			record, prov, err := lookup(ctx, query)
			if err != nil {
				if errors.IsNotFound(err) {
					return errors.NewNotFoundError("organization", query)
				}
				return err
			}

			if !showProvenance {
				prov = nil
			}
			return a.renderRecord(cmd.OutOrStdout(), record, prov)
		},
	}

	cmd.Flags().BoolVar(&byDomain, "domain", false, "treat the argument as a website domain")
	cmd.Flags().BoolVar(&showProvenance, "provenance", false, "include per-field source attribution")

	return cmd
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("orgmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}
