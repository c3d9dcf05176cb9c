package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print engine metadata",
	Long: `Print the engine's names, versions, file extensions and MIME types.

Output formats: text (default), json, yaml.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")

	a, err := newApp(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	d := a.factory.Descriptor()
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		data, err := yaml.Marshal(d)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "text":
		fmt.Fprintf(out, "Engine:      %s %s\n", d.EngineName, d.EngineVersion)
		fmt.Fprintf(out, "Language:    %s %s\n", d.LanguageName, d.LanguageVersion)
		fmt.Fprintf(out, "Runtime:     %s\n", a.cfg.Engine.Language)
		fmt.Fprintf(out, "Names:       %s\n", strings.Join(d.Names, ", "))
		fmt.Fprintf(out, "Extensions:  %s\n", strings.Join(d.Extensions, ", "))
		fmt.Fprintf(out, "MIME types:  %s\n", strings.Join(d.MimeTypes, ", "))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}
}
