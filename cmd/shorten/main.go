// Command shorten creates and expands short URLs from the terminal.
//
//	shorten [-api URL] [-copy] <url>
//	shorten [-api URL] -x <short url or code>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/caarlos0/env/v6"
	"github.com/serroba/url-shortener/internal/client"
)

type config struct {
	API     string        `env:"SHORTENER_API"     envDefault:"http://localhost:8888"`
	Timeout time.Duration `env:"SHORTENER_TIMEOUT" envDefault:"15s"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2
	}

	flags := flag.NewFlagSet("shorten", flag.ContinueOnError)
	flags.SetOutput(stderr)
	api := flags.String("api", cfg.API, "shortener API base URL")
	expand := flags.Bool("x", false, "print where a short URL redirects instead of shortening")
	copyResult := flags.Bool("copy", false, "copy the result to the clipboard")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	c, err := client.New(*api)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	input := strings.Join(flags.Args(), " ")

	var result string
	if *expand {
		result, err = c.Expand(ctx, input)
	} else {
		result, err = c.Shorten(ctx, input)
	}

	if err != nil {
		fmt.Fprintln(stderr, client.Message(err))

		return 1
	}

	fmt.Fprintln(stdout, result)

	if *copyResult {
		if err := clipboard.WriteAll(result); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)

			return 1
		}

		fmt.Fprintln(stdout, "Copied!")
	}

	return 0
}
