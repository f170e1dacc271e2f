package main

import (
	"context"
	"log"
	"time"

	"marinaclub/internal/config"
	"marinaclub/internal/database"
	"marinaclub/internal/modules/payment"
	"marinaclub/internal/repository"
)

// One-shot sweep pass for running from cron instead of the in-process ticker.
func main() {
	cfg, err := config.LoadSweep()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	paymentRepo := repository.NewPaymentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	sweeper := payment.NewSweeper(paymentRepo, bookingRepo, cfg.SweepGrace, cfg.ImmediateDueSpan, log.Printf).
		WithOverduePenalty(cfg.OverduePenalty)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stats, err := sweeper.RunOnce(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("payment sweep failed: %v", err)
	}
	log.Printf("payment sweep completed: scanned=%d overdue=%d cancelled=%d",
		stats.Scanned, stats.MarkedOverdue, stats.BookingsCancelled)
}
