package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
	"github.com/clearlist-hq/clearlist-verifier/pkg/httpclient"
	"github.com/clearlist-hq/clearlist-verifier/pkg/validation"
)

// checkmail runs a single ad-hoc validation operation and prints the
// resulting document as JSON.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "checkmail: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	op := flag.String("op", domain.OpValidate, "operation: validate, disposable, or free")
	apiKey := flag.String("key", os.Getenv("MBV_API_KEY"), "API key (defaults to MBV_API_KEY)")
	baseURL := flag.String("base-url", "", "override the API base URL")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	email := flag.Arg(0)
	if email == "" {
		return fmt.Errorf("usage: checkmail [-op validate|disposable|free] <email_address>")
	}
	if *apiKey == "" {
		return fmt.Errorf("API key is required (pass -key or set MBV_API_KEY)")
	}

	opts := []validation.Option{
		validation.WithHTTPClient(httpclient.NewRestyClient(*timeout)),
	}
	if *baseURL != "" {
		opts = append(opts, validation.WithBaseURL(*baseURL))
	}
	client := validation.New(*apiKey, opts...)

	ctx := context.Background()
	switch *op {
	case domain.OpValidate:
		res, err := client.ValidateEmail(ctx, email)
		return printResult(res, err)
	case domain.OpDisposable:
		res, err := client.CheckDisposable(ctx, email)
		return printResult(res, err)
	case domain.OpFree:
		res, err := client.CheckFreeEmail(ctx, email)
		return printResult(res, err)
	default:
		return fmt.Errorf("unsupported operation %q", *op)
	}
}

func printResult[R validation.Record](res validation.Result[R], err error) error {
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	switch {
	case res.OK():
		return enc.Encode(res.Record)
	case res.Rejected():
		return enc.Encode(map[string]any{"error": res.APIError})
	default:
		fmt.Fprintf(os.Stderr, "checkmail: no result (service answered status %d)\n", res.StatusCode)
		return enc.Encode(struct{}{})
	}
}
