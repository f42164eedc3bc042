package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/channelstat/internal/utils"
)

// writeReport prints body to w, or saves it to path and reports where.
func writeReport(w io.Writer, body []byte, path string) error {
	if path == "" {
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if len(body) > 0 && body[len(body)-1] != '\n' {
			fmt.Fprintln(w)
		}
		return nil
	}
	if err := utils.SafeWriteFile(path, body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(w, "✓ Saved report to %s\n", path)
	return nil
}
