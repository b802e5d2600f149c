package main

import (
	"bytes"
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
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bankcore-cli",
		Short: "BankCore CLI tool",
		Long:  `A command line interface for interacting with the BankCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(balanceCmd(), accountMovementsCmd())

	movementCmd := &cobra.Command{
		Use:   "movement",
		Short: "Movement operations",
	}
	movementCmd.AddCommand(createMovementCmd())

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting operations",
	}
	reportCmd.AddCommand(statementCmd())

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(consistencyCmd())

	rootCmd.AddCommand(accountCmd, movementCmd, reportCmd, ledgerCmd)

	return rootCmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show the current balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/" + args[0] + "/balance")
		},
	}
}

func accountMovementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movements <account-id>",
		Short: "List movements recorded against an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/" + args[0] + "/movements")
		},
	}
}

func createMovementCmd() *cobra.Command {
	var (
		accountID    string
		movementType string
		amount       string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a movement against an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"account_id":    accountID,
				"movement_type": movementType,
				"amount":        amount,
			}
			if description != "" {
				payload["description"] = description
			}
			return postJSON("/api/v1/movements/", payload)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&movementType, "type", "", "Movement type (DEPOSIT or WITHDRAWAL)")
	cmd.Flags().StringVar(&amount, "amount", "", "Movement amount")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func statementCmd() *cobra.Command {
	var (
		clientID  string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Generate an account statement for a client and date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := fmt.Sprintf("?client_id=%s&start_date=%s&end_date=%s", clientID, startDate, endDate)
			return getJSON("/api/v1/reports/statement" + query)
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("consistency check FAILED (status %d): %s", resp.StatusCode, string(body))
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Println("Consistency check PASSED")
			return nil
		},
	}
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return nil
	}

	printJSON(pretty)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(out))
}
