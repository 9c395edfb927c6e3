package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/secondbrain/brain-client/internal/share"
)

func (a *app) newShareCmd() *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Publish a read-only link to your collection",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			workflow := do.MustInvoke[*share.Workflow](a.injector)
			workflow.Open()

			link, err := workflow.Share(cmd.Context())
			if err != nil {
				return err
			}
			if msg := workflow.Snapshot().Message; msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if copyLink {
				if _, err := workflow.CopyLink(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied!")
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Also copy the link to the clipboard")
	return cmd
}

func (a *app) newRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Turn off the public link",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := do.MustInvoke[*share.Workflow](a.injector).Revoke(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sharing turned off")
			return nil
		}),
	}
}
