package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"lagmeter/pingclient"
	"lagmeter/sampler"
	"lagmeter/stats"
)

const (
	ATTEMPTS = 10
	DELAY    = time.Second
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)
	os.Exit(run(os.Args[1:], ATTEMPTS, DELAY, os.Stdout, os.Stderr))
}

func run(args []string, attempts int, delay time.Duration, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "Usage: pingurl <URL>")
		return 1
	}
	url := args[0]

	client := pingclient.NewClient(url)
	s := sampler.NewSampler(&sampler.Options{
		Attempts: attempts,
		Delay:    delay,
		OnProgress: func(done, total int) {
			fmt.Fprintf(out, "%.2f%% done\n", float64(done)/float64(total)*100)
		},
	})
	summary := s.RunBatch(client.Ping)
	printReport(out, url, attempts, summary)
	return 0
}

func printReport(out io.Writer, url string, attempts int, summary stats.Summary) {
	fmt.Fprintf(out, "\nResponse time for %s over %d requests:\n", url, attempts)
	if summary.NoData() {
		color.New(color.FgRed).Fprintln(out, "No successful samples")
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(out, "Average: %.2f ms\n", summary.Mean)
	bold.Fprintf(out, "Median: %.2f ms\n", summary.Median)
	bold.Fprintf(out, "Minimum: %.2f ms\n", summary.Min)
	bold.Fprintf(out, "Maximum: %.2f ms\n", summary.Max)
}
