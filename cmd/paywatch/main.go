// paywatch polls the payment status endpoint until a payment settles, the
// attempt budget runs out, or the process is interrupted. Useful for
// watching a checkout from a terminal while the web client is closed.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/payment"
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:4000", "backend base URL")
		paymentID = flag.String("payment", "", "payment identifier to watch (required)")
		interval  = flag.Duration("interval", 5*time.Second, "spacing between checks")
		attempts  = flag.Int("attempts", 60, "check budget before giving up")
	)
	flag.Parse()

	if *paymentID == "" {
		fmt.Fprintln(os.Stderr, "paywatch: -payment is required")
		flag.Usage()
		os.Exit(2)
	}

	logger.Init("development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 15 * time.Second}
	check := func(ctx context.Context, id string) (models.PaymentStatus, error) {
		url := fmt.Sprintf("%s/api/v1/payment/status/%s", *baseURL, id)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		var body dto.PaymentStatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", err
		}
		fmt.Printf("%s  %s\n", time.Now().Format(time.TimeOnly), body.Status)
		return models.PaymentStatus(body.Status), nil
	}

	poller := &payment.Poller{Interval: *interval, MaxAttempts: *attempts}
	err := poller.Wait(ctx, *paymentID, check)
	switch {
	case err == nil:
		fmt.Println("payment settled")
	case errors.Is(err, payment.ErrPollTimeout):
		fmt.Fprintln(os.Stderr, "paywatch: gave up waiting, restart the checkout to retry")
		os.Exit(1)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "paywatch: interrupted")
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, "paywatch:", err)
		os.Exit(1)
	}
}
