package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calehh/evote/client"
	"github.com/calehh/evote/view"
)

var candidatesCmd = &cobra.Command{
	Use:     "candidates",
	Short:   "List or register candidates",
	Aliases: []string{"c"},
}

var listCandidatesCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all candidates with their vote counts",
	Aliases: []string{"show", "ls"},
	Args:    cobra.ExactArgs(0),
	RunE:    listCandidatesRun,
}

var addCandidateCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a candidate and wait for confirmation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  addCandidateRun,
}

func init() {
	urlFlag(listCandidatesCmd, &providerURL)
	urlFlag(addCandidateCmd, &providerURL)
	candidatesCmd.AddCommand(listCandidatesCmd)
	candidatesCmd.AddCommand(addCandidateCmd)
}

func listCandidatesRun(cmd *cobra.Command, args []string) error {
	cli, logger, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cli.Close()
	list, err := cli.ListCandidates(cmd.Context())
	if err != nil {
		logger.Error("show candidates failed", "err", err)
		return errors.New(view.NoticeListFailed)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVOTES")
	for _, c := range view.ToCandidates(list) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Id, c.Name, c.Votes)
	}
	return w.Flush()
}

func addCandidateRun(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		return errors.New(view.PromptEnterName)
	}
	cli, logger, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cli.Close()
	if err = cli.AddCandidate(cmd.Context(), name); err != nil {
		logger.Error("add candidate failed", "err", err)
		if errors.Is(err, client.ErrNoCredential) {
			return err
		}
		return errors.New(view.NoticeAddFailed)
	}
	fmt.Fprintln(cmd.OutOrStdout(), view.NoticeAdded)
	return nil
}
