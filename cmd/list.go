package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List bookable labs and hour slots",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Laboratorios:")
			for _, l := range reservation.Labs() {
				fmt.Fprintf(out, "  %-16s %s\n", l.Key(), l)
			}
			fmt.Fprintln(out, "Horarios:")
			for _, s := range reservation.Slots() {
				fmt.Fprintf(out, "  %-6s %s\n", s, s.Display())
			}
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), sess.Views.Upcoming(time.Now()))
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var from, to string
	c := &cobra.Command{
		Use:   "history",
		Short: "List reservations in a date range (past reservations by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (from == "") != (to == "") {
				return fmt.Errorf("--from and --to must be given together")
			}
			var fd, td reservation.Date
			if from != "" {
				var err error
				if fd, err = reservation.ParseDate(from); err != nil {
					return fmt.Errorf("invalid --from (want YYYY-MM-DD): %w", err)
				}
				if td, err = reservation.ParseDate(to); err != nil {
					return fmt.Errorf("invalid --to (want YYYY-MM-DD): %w", err)
				}
			}
			sess, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			if from == "" {
				return printTable(cmd.OutOrStdout(), sess.Views.Past(time.Now()))
			}
			return printTable(cmd.OutOrStdout(), sess.Views.FilterByRange(fd, td))
		},
	}
	c.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	c.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")
	return c
}

func printTable(w io.Writer, rs []reservation.Reservation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tLABORATORIO\tFECHA\tHORA")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.HolderName, r.Lab, r.Date, r.Slot.Display())
	}
	return tw.Flush()
}
