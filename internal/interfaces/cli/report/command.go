package report

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	reportUsecases "github.com/frigoservis/servis/internal/application/report/usecases"
	"github.com/frigoservis/servis/internal/infrastructure/database"
	"github.com/frigoservis/servis/internal/infrastructure/email"
	"github.com/frigoservis/servis/internal/infrastructure/repository"
	"github.com/frigoservis/servis/internal/interfaces/cli/bootstrap"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/services/markdown"
)

var (
	date   string
	dryRun bool
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Operational reports",
	}

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Send the daily service report",
		Long:  `Summarize the services and spare-part orders of one business day and email the report to the configured recipients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaily(cmd.Context(), *opts)
		},
	}
	daily.Flags().StringVarP(&date, "date", "d", "", "Business day as YYYY-MM-DD (defaults to today)")
	daily.Flags().BoolVar(&dryRun, "dry-run", false, "Print the markdown report instead of sending it")

	cmd.AddCommand(daily)

	return cmd
}

func runDaily(ctx context.Context, opts bootstrap.Options) error {
	env, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	day := biztime.NowUTC()
	if date != "" {
		day, err = biztime.ParseDate(date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", date, err)
		}
	}

	cfg := env.Config
	recipients := cfg.Report.Recipients
	if dryRun {
		recipients = nil
	}

	db := database.Get()
	uc := reportUsecases.NewSendDailyReportUseCase(
		repository.NewServiceRepository(db),
		repository.NewSparePartOrderRepository(db),
		markdown.NewMarkdownService(),
		email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		}),
		recipients,
		env.Logger,
	)

	result, err := uc.Execute(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to send daily report: %w", err)
	}

	if dryRun || result.Recipients == 0 {
		fmt.Println(result.Markdown)
		return nil
	}

	fmt.Printf("daily report for %s sent to %d recipient(s)\n", result.Summary.Date, result.Recipients)
	return nil
}
