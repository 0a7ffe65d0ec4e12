// Package main provides the entry point for the imgsentry CLI.
//
// imgsentry is a scheduled monitoring job for website images. It fetches a
// fixed set of pages, finds every image they reference, and reports images
// that are hosted on a monitored IP address or that fail to load.
//
// Usage:
//
//	imgsentry scan --base-url https://www.example.com --target-ip 203.0.113.7
//	imgsentry scan -c myconfig.yaml
//
// See --help for all available options.
package main

// main is the entry point for imgsentry.
func main() {
	Execute()
}
