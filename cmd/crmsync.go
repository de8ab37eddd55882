package cmd

import (
	"errors"
	"fmt"

	"lead-capture-backend/crm"

	"github.com/spf13/cobra"
)

var crmSyncLead string

var crmSyncCmd = &cobra.Command{
	Use:   "crm-sync",
	Short: "Push one lead to the configured CRM",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}
		provider := crm.Select(cfg)
		if provider == nil {
			return errors.New("no CRM configured: set HUBSPOT_ACCESS_TOKEN or SALESFORCE_USERNAME")
		}

		lead, err := s.Get(cmd.Context(), crmSyncLead)
		if err != nil {
			return fmt.Errorf("lead %s: %w", crmSyncLead, err)
		}
		if !crm.NewSyncer(provider, s).Sync(cmd.Context(), lead) {
			return fmt.Errorf("sync to %s failed, see logs", provider.Name())
		}

		contactID := ""
		if lead.CRMContactID != nil {
			contactID = *lead.CRMContactID
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lead %s synced to %s as %s\n", lead.ID, provider.Name(), contactID)
		return nil
	},
}

func init() {
	crmSyncCmd.Flags().StringVar(&crmSyncLead, "lead", "", "lead id")
	_ = crmSyncCmd.MarkFlagRequired("lead")
}
