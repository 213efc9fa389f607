// Mails the monthly payment-request deadline reminder. The deadline is the
// 5th of the following month, except in December where the books close on
// the 31st.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/config"
	"hr-ops/internal/mailer"
	"hr-ops/internal/report"
)

func main() {
	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.PaymentRecipient == "" {
		log.Fatal().Msg("PAYMENT_NOTICE_RECIPIENT is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	subject, body := report.PaymentNotice(time.Now())
	err = mailer.New(cfg.MailBaseURL, cfg.MailToken).Send(ctx, mailer.Message{
		To:         cfg.PaymentRecipient,
		Subject:    subject,
		HTMLBody:   body,
		SenderName: cfg.PaymentSender,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("payment notice failed")
	}
	log.Info().Str("subject", subject).Msg("payment notice sent")
}
