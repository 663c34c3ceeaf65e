package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"linkea/internal/app/deps"
	"linkea/internal/core/domain/logging"
	emailreadyforsending "linkea/internal/rabbitmq/consumers/email_ready_for_sending"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	rabbitmqChannel, err := deps.MailQueueChannel()
	if err != nil {
		log.Error(context.Background(), "Could not open mail queue channel.", logging.Entry("err", err))
		panic(err)
	}
	defer rabbitmqChannel.Close()

	consumer := emailreadyforsending.New(log, rabbitmqChannel, deps.Config.MailQueue, deps.MailTransport)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info(
		ctx,
		"Mail worker has started.",
		logging.Entry("queue", deps.Config.MailQueue),
		logging.Entry("mailTransport", deps.Config.MailTransport),
	)
	if err := consumer.Consume(ctx); err != nil {
		log.Error(context.Background(), "Mail worker stopped with an error.", logging.Entry("err", err))
		return
	}
	log.Info(context.Background(), "Mail worker is stopping gracefully.")
}
