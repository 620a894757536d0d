package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

func newCreateCmd() *cobra.Command {
	var matricula, nombre, correo, carrera, lab, fecha, hora string

	c := &cobra.Command{
		Use:   "create",
		Short: "Book a lab for one hour slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := reservation.ParseLab(lab)
			if err != nil {
				return err
			}
			d, err := reservation.ParseDate(fecha)
			if err != nil {
				return fmt.Errorf("invalid --fecha (want YYYY-MM-DD): %w", err)
			}
			s, err := reservation.ParseSlot(hora)
			if err != nil {
				return err
			}

			sess, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			res, err := sess.Coordinator.Create(cmd.Context(), reservation.Reservation{
				HolderID:   matricula,
				HolderName: nombre,
				Contact:    correo,
				Career:     carrera,
				Lab:        l,
				Date:       d,
				Slot:       s,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created reservation id=%s %s\n", res.Reservation.ID, res.Reservation.Key())
			if res.Stale {
				fmt.Fprintf(out, "warning: list may be stale: %v\n", res.StaleErr)
			}
			return nil
		},
	}

	c.Flags().StringVar(&matricula, "matricula", "", "student id")
	c.Flags().StringVar(&nombre, "nombre", "", "full name")
	c.Flags().StringVar(&correo, "correo", "", "contact e-mail (optional)")
	c.Flags().StringVar(&carrera, "carrera", "", "career (optional)")
	c.Flags().StringVar(&lab, "laboratorio", "", "lab key, see registro catalog")
	c.Flags().StringVar(&fecha, "fecha", "", "date YYYY-MM-DD")
	c.Flags().StringVar(&hora, "hora", "", "slot such as 10-11")

	_ = c.MarkFlagRequired("matricula")
	_ = c.MarkFlagRequired("nombre")
	_ = c.MarkFlagRequired("laboratorio")
	_ = c.MarkFlagRequired("fecha")
	_ = c.MarkFlagRequired("hora")
	return c
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res, err := sess.Coordinator.Cancel(cmd.Context(), args[0])
			if errors.Is(err, reservation.ErrNotFound) {
				fmt.Fprintf(out, "reservation %s was already gone\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "cancelled reservation id=%s\n", args[0])
			if res.Stale {
				fmt.Fprintf(out, "warning: list may be stale: %v\n", res.StaleErr)
			}
			return nil
		},
	}
}
