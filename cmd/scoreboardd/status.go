package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmin023/scoreboard/internal/settings"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the running daemon's game-state summary",
	Long: `Query a running scoreboardd instance's admin status endpoint and
print the same human-readable game-state dump the original checker's
Display impl produced.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s := settings.Load()

	req, err := http.NewRequest(http.MethodGet, "http://localhost"+s.ListenAddr()+"/api/admin/status", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Admin-Secret", s.AdminSecret)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		cmd.Printf("✗ scoreboardd is not reachable (%s)\n", s.ListenAddr())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cmd.Printf("✗ status check failed: HTTP %d\n", resp.StatusCode)
		return fmt.Errorf("status: unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	cmd.Print(string(body))
	return nil
}
