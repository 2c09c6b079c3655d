// Command flacscan is a manual-verification harness for the flacscan
// library: it runs GetTag over a real file and, given --seek, drives the
// frame aligner over the bytes following an arbitrary offset to confirm
// it can re-find a valid frame boundary.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wavepath/flacscan"
	"github.com/wavepath/flacscan/internal/align"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flacscan",
		Short:   "Inspect FLAC files with the flacscan library",
		Version: flacscan.GetVersion(),
	}
	cmd.AddCommand(tagsCmd())
	cmd.AddCommand(alignCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print flacscan library version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := flacscan.GetVersionInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "flacscan %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  git commit: %s\n", info.GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:      %s\n", info.BuildTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func tagsCmd() *cobra.Command {
	var anchor string
	cmd := &cobra.Command{
		Use:   "tags <path>",
		Short: "Print the resolved tag map for a FLAC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, warnings, err := flacscan.GetTag(args[0], anchor)
			if err != nil {
				return err
			}
			for _, k := range tags.Keys() {
				v := tags[k]
				if v.Kind() == flacscan.KindBytes {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=<%d bytes>\n", k, v.Len())
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v.AsString())
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Stage, w.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&anchor, "anchor", "", "cue-track fragment to select (e.g. \"2\")")
	return cmd
}

func alignCmd() *cobra.Command {
	var seek int64
	var chunkSize int
	cmd := &cobra.Command{
		Use:   "align <path>",
		Short: "Realign a stream to a FLAC frame boundary starting at --seek",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if _, err := f.Seek(seek, io.SeekStart); err != nil {
				return err
			}

			a := align.New()
			buf := make([]byte, chunkSize)
			total := 0
			for !a.Aligned() {
				n, err := f.Read(buf)
				if n == 0 && err != nil {
					return fmt.Errorf("no frame boundary found within the file: %w", err)
				}
				chunk := buf[:n]
				a.Align(&chunk, n, 0)
				total += n
				if err != nil {
					break
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aligned after discarding %d bytes (read %d bytes from offset %d)\n",
				a.Bytes(), total, seek)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seek, "seek", 0, "byte offset to start reading from")
	cmd.Flags().IntVar(&chunkSize, "chunk", 4096, "read chunk size in bytes")
	return cmd
}
