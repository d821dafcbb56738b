package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	sponsorscout "sponsor-scout/agents/sponsor-scout"
	"sponsor-scout/agents/sponsor-scout/api"
	"sponsor-scout/agents/sponsor-scout/transcript"
	"sponsor-scout/internal/models"
	"sponsor-scout/shared/config"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot pitch")
	useCookies := flag.Bool("cookies", false, "enable the cookie-session fallback for blocked requests")
	outFile := flag.String("out", "", "write the pitch markdown to this file as well as stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := sponsorscout.NewAgent(cfg)
	if err := agent.Initialize(); err != nil {
		log.Fatalf("Failed to initialize agent: %v", err)
	}

	if *serve {
		fmt.Printf("Starting %s API...\n", agent.Name())
		server := api.NewServer(agent)
		if err := server.ListenAndServe(ctx, cfg.Monitoring.HealthPort); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: sponsor-scout [-cookies] [-out pitch.md] URL [URL...]")
		fmt.Fprintln(os.Stderr, "       sponsor-scout -serve")
		os.Exit(2)
	}

	report, err := agent.GeneratePitch(ctx, urls, transcript.Options{UseCookies: *useCookies})
	if err != nil {
		if report != nil {
			printVideoSummary(report)
		}
		log.Fatalf("Failed to generate pitch: %v", err)
	}

	printVideoSummary(report)
	fmt.Println()
	fmt.Println(report.Pitch)

	if *outFile != "" {
		if err := os.WriteFile(*outFile, []byte(report.Pitch+"\n"), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", *outFile, err)
		}
		log.Printf("Pitch written to %s", *outFile)
	}
}

func printVideoSummary(report *models.PitchReport) {
	fmt.Fprintf(os.Stderr, "Processed %d videos: %d succeeded, %d failed\n",
		len(report.Videos), report.Succeeded, report.Failed)
	for _, v := range report.Videos {
		if v.Succeeded() {
			fmt.Fprintf(os.Stderr, "  ✅ %s (%s, %d chars)\n", v.URL, v.Strategy, v.CharCount)
		} else {
			fmt.Fprintf(os.Stderr, "  ❌ %s: %s\n", v.URL, v.Error)
		}
	}
}
