// Package main is the entry point for the agencydesk CLI.
package main

import "github.com/agencydesk/agencydesk/internal/cli"

func main() {
	cli.Execute()
}
