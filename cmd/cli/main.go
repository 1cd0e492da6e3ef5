package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inventory-cli",
		Short: "Inventory CLI tool",
		Long:  `A command line interface for inspecting branch ingredient stock over the inventory API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the inventory API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	stockCmd := &cobra.Command{
		Use:   "stock",
		Short: "Stock operations",
	}

	listCmd := &cobra.Command{
		Use:   "list <branch-id>",
		Short: "List current stock levels at a branch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/stocks/" + args[0])
		},
	}

	quantityCmd := &cobra.Command{
		Use:   "quantity <branch-id> <ingredient-id>",
		Short: "Show the current quantity of one ingredient at a branch",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/stocks/" + args[0] + "/" + args[1])
		},
	}

	stockCmd.AddCommand(listCmd, quantityCmd)
	rootCmd.AddCommand(stockCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting operations",
	}

	valuationCmd := &cobra.Command{
		Use:   "valuation <branch-id>",
		Short: "Show the inventory valuation report for a branch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reports/inventory/" + args[0])
		},
	}

	reportCmd.AddCommand(valuationCmd)
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty json.RawMessage = body
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(string(out))
}
