package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/service/auth"
)

type seedOptions struct {
	email    string
	name     string
	password string
	count    int
}

var sampleTitles = []string{
	"Missed the morning standup",
	"Coffee machine out of order",
	"Deploy rolled back",
	"Forgot the meeting room booking",
	"Late delivery",
	"Printer jam before the review",
	"Wrong branch merged",
	"Broken window in the lobby",
	"Lunch order mixed up",
	"Flaky test blocked the release",
}

var sampleNotes = []string{
	"",
	"Happened again after the weekend.",
	"Escalated to the team lead.",
	"",
	"Resolved within the hour.",
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	so := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample entries",
		Long: `Insert sample entries owned by a seed account.

The account is registered when it does not exist yet, otherwise the given
password is used to sign in.`,
		Example: `
pudiya seed
pudiya seed --count 40 --email demo@pudiya.local`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if so.count <= 0 {
				return fmt.Errorf("--count must be positive (got %d)", so.count)
			}

			a, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			owner, err := seedAccount(cmd.Context(), a.Auth, so)
			if err != nil {
				return err
			}

			for _, e := range sampleEntries(owner, domain.DateOf(time.Now()), so.count) {
				if _, err := a.Entries.CreateEntry(cmd.Context(), e); err != nil {
					return fmt.Errorf("seed entry %q: %w", e.Title, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d entries for %s.\n", so.count, owner.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&so.email, "email", "demo@pudiya.local", "seed account email")
	cmd.Flags().StringVar(&so.name, "name", "Pudi Admin", "seed account display name")
	cmd.Flags().StringVar(&so.password, "password", "pudiya-demo", "seed account password")
	cmd.Flags().IntVar(&so.count, "count", 12, "number of entries to insert")
	return cmd
}

type accountService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
}

func seedAccount(ctx context.Context, svc accountService, so *seedOptions) (domain.Identity, error) {
	res, err := svc.Register(ctx, auth.RegisterInput{Email: so.email, Name: so.name, Password: so.password})
	if errors.Is(err, domain.ErrAlreadyExists) {
		res, err = svc.LoginWithPassword(ctx, auth.LoginPasswordInput{Email: so.email, Password: so.password})
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("seed account: %w", err)
	}
	return res.User.Identity(), nil
}

// sampleEntries spreads n entries over the days before today, cycling
// through every intensity and status.
func sampleEntries(owner domain.Identity, today domain.CalendarDate, n int) []domain.Entry {
	intensities := []domain.Intensity{domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh}
	statuses := []domain.Status{domain.StatusReturn, domain.StatusKawa, domain.StatusAsarana}

	name := owner.Name
	if name == "" {
		name = owner.Email
	}

	out := make([]domain.Entry, 0, n)
	for i := range n {
		e := domain.Entry{
			Title:     sampleTitles[i%len(sampleTitles)],
			Date:      domain.DateOf(today.Time().AddDate(0, 0, -i*3)),
			Intensity: intensities[i%len(intensities)],
			Status:    statuses[(i/len(intensities))%len(statuses)],
			OwnerID:   owner.ID,
			OwnerName: name,
		}
		if note := sampleNotes[i%len(sampleNotes)]; note != "" {
			e.Notes = &note
		}
		out = append(out, e)
	}
	return out
}
