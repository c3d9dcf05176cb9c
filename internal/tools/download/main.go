// Command download fetches a QuickJS WASI module for the quickjs runtime.
//
//	go run ./internal/tools/download --sha256 <hex> <url> qjs.wasm
//
// An existing output file is left alone unless --force is given. With
// --sha256 the download is rejected when its digest does not match.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		sum   string
		force bool
	)
	cmd := &cobra.Command{
		Use:           "download <url> <output>",
		Short:         "Download a QuickJS WASI module",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, output := args[0], args[1]
			if !force {
				if _, err := os.Stat(output); err == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s exists, skipping\n", output)
					return nil
				}
			}
			n, err := download(cmd.Context(), http.DefaultClient, url, output, sum)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&sum, "sha256", "", "Expected SHA-256 of the module (hex)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	return cmd
}

// download writes url's body to output through a temporary file in the
// same directory, so output is never left half-written.
func download(ctx context.Context, client *http.Client, url, output, wantSum string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), ".download-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}

	if wantSum != "" {
		got := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(got, wantSum) {
			return 0, fmt.Errorf("checksum mismatch: got %s, want %s", got, wantSum)
		}
	}

	if err := os.Rename(tmp.Name(), output); err != nil {
		return 0, err
	}
	return n, nil
}
