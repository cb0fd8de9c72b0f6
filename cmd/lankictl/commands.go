package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/lanki/internal/config"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
	"github.com/vytor/lanki/internal/repository"
)

func newProblemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problem <url>",
		Short: "Show which problem a page URL refers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := problem.Current(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind:      %s\n", page.Kind)
			if page.Kind == problem.KindProblem {
				fmt.Fprintf(out, "title:     %s\n", page.Title)
				fmt.Fprintf(out, "canonical: %s\n", problem.NormalizeURL(args[0]))
			}
			return nil
		},
	}
}

func newNextCmd(cfg *config.Config) *cobra.Command {
	var current string
	cmd := &cobra.Command{
		Use:   "next <email>",
		Short: "List the problems a user should review next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(*cfg)
			if err != nil {
				return err
			}
			defer d.close()

			problems := d.reviews.Recommend(context.Background(), args[0], current)
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to review")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tProblem\tDiff\tScore\tURL")
			fmt.Fprintln(w, "-\t-------\t----\t-----\t---")
			for i, p := range problems {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%s\n", i+1, p.Name, p.Difficulty, p.Score, p.URL)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "URL of the problem on screen, excluded from the list")
	return cmd
}

func newRateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <email> <url> <easy|medium|hard>",
		Short: "Record a self-rated difficulty for a problem",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, err := models.ParseDifficulty(args[2])
			if err != nil {
				return err
			}
			d, err := openDeps(*cfg)
			if err != nil {
				return err
			}
			defer d.close()

			ctx := context.Background()
			user, err := d.users.Login(ctx, args[0])
			if err != nil {
				return err
			}
			if err := d.ratings.SubmitForUser(ctx, user.ID, args[1], difficulty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rated %s as %s\n", problem.NormalizeURL(args[1]), difficulty)
			return nil
		},
	}
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "history <email> <url>",
		Short: "Show the stored self-ratings for one problem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(*cfg)
			if err != nil {
				return err
			}
			defer d.close()

			ctx := context.Background()
			userID, err := d.users.LookupUserID(ctx, args[0])
			if err != nil {
				return err
			}
			problemURL := problem.NormalizeURL(args[1])
			h, err := d.attempts.Get(ctx, userID, problemURL)
			if stderrors.Is(err, repository.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "no ratings for %s\n", problemURL)
				return nil
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tDiff\tAttempted")
			fmt.Fprintln(w, "-\t----\t---------")
			for i, rec := range h.RecentAccesses {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, rec.Difficulty, rec.TimeAttempted)
			}
			return w.Flush()
		},
	}
}

func newEventsCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events <email>",
		Short: "List a user's most recent widget events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(*cfg)
			if err != nil {
				return err
			}
			defer d.close()

			ctx := context.Background()
			userID, err := d.users.LookupUserID(ctx, args[0])
			if err != nil {
				return err
			}
			events, err := d.events.ListByUser(ctx, userID, limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no events")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "When\tEvent\tDetail")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.UTC().Format("2006-01-02 15:04:05"), e.Type, eventDetail(e))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show (0 for all)")
	return cmd
}

func eventDetail(e models.Event) string {
	switch {
	case e.Rank != nil:
		return "rank " + strconv.Itoa(*e.Rank)
	case e.Difficulty != "":
		return e.Difficulty + " " + e.Problem
	default:
		return e.Problem
	}
}
