package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"WebWordCount/internal/dictionary"
	"WebWordCount/internal/dispatch"
	"WebWordCount/internal/fetch"
	httpserver "WebWordCount/internal/http"
	"WebWordCount/internal/logger"
)

// Fixed endpoint this tool was written against. The host, port and path
// are deliberately not configurable.
const (
	sourceHost     = "os1.csi.miamioh.edu"
	sourcePort     = 80
	sourceBasePath = "/~raodm/cse381/hw4/SlowGet.cgi?file="

	defaultDictionary = "english.txt"
)

func main() {
	dictPath := flag.String("dict", defaultDictionary, "Word list file, one word per line")
	workers := flag.Int("workers", 0, "Max simultaneous fetches, 0 for one goroutine per file")
	timeout := flag.Duration("timeout", 0, "Dial and read timeout per fetch, 0 to block forever")
	logLevel := flag.String("log-level", "INFO", "Log level: DEBUG, INFO, WARN or ERROR")
	serve := flag.Bool("serve", false, "Serve the HTTP API instead of counting the arguments")
	port := flag.Int("port", 8080, "HTTP API port for -serve")
	flag.Parse()

	lg := logger.New(*logLevel)

	dict := dictionary.Load(*dictPath)
	if dict.Len() == 0 {
		lg.Warn("Dictionary empty or missing: path=%s (no word will be recognized)", *dictPath)
	} else {
		lg.Debug("Dictionary loaded: path=%s words=%d", *dictPath, dict.Len())
	}

	client := fetch.NewClient(fetch.Config{
		Host:     sourceHost,
		Port:     sourcePort,
		BasePath: sourceBasePath,
		Timeout:  *timeout,
	})
	disp := dispatch.New(client, dict, dispatch.Opts{
		Workers:  *workers,
		LogLevel: *logLevel,
	})

	if *serve {
		server := httpserver.NewServer(httpserver.ServerOpts{
			Port:     *port,
			LogLevel: *logLevel,
		}, disp, dict)
		if err := server.Start(); err != nil {
			lg.Error("HTTP server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file1> <file2> ...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	start := time.Now()
	for _, result := range disp.Run(files) {
		fmt.Println(result.Summary())
	}
	lg.Debug("Processed %d files in %v", len(files), time.Since(start))
}
