package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/court-metrics/internal/config"
	"github.com/iliyamo/court-metrics/internal/queue"
)

// NewConsumeCmd creates the "consume" subcommand, which appends match
// events from RabbitMQ to a log file.
func NewConsumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Consume match events and append them to logs/matches.log",
		RunE:  runConsume,
	}
	cmd.Flags().String("amqp-url", "", "Broker URL (default: RABBITMQ_URL, AMQP_URL or local guest)")
	cmd.Flags().String("log-dir", "logs", "Directory for matches.log")
	return cmd
}

func runConsume(cmd *cobra.Command, _ []string) error {
	url, _ := cmd.Flags().GetString("amqp-url")
	if url == "" {
		url = config.AMQPURLFromEnv()
	}
	dir, _ := cmd.Flags().GetString("log-dir")

	log := newLogger(cmd, false)
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := queue.StartMatchConsumer(ctx, url, dir, log)
	if errors.Is(err, ctx.Err()) {
		log.Info(ctx, "match consumer stopped")
		return nil
	}
	return err
}
