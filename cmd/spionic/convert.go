package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/spionic/pkg/spionic"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: "Convert SPIonic text to Unicode Greek",
		Long: `convert prints the Unicode Greek form of its arguments, joined by spaces.
Without arguments it converts stdin to stdout as a stream.`,
		Example: `  spionic convert "a)/nqrwpoj"
  spionic convert --form nfd < iliad.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, form)
		},
	}
	cmd.Flags().StringVarP(&form, "form", "f", "nfc", "output normalization: nfc, nfd or none")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Rewrite SPIonic text to its narrow, combined ASCII form",
		Long: `normalize applies the width and combination passes only, so the output is
still SPIonic. Without arguments it reads stdin line by line.`,
		Example: `  spionic normalize "a)/nqrwpoj"`,
		RunE:    runNormalize,
	}
}

func runConvert(cmd *cobra.Command, args []string, formName string) error {
	form, err := spionic.ParseForm(formName)
	if err != nil {
		return err
	}
	conv := spionic.New(spionic.WithForm(form))

	w := cmd.OutOrStdout()
	if len(args) > 0 {
		_, err := fmt.Fprintln(w, conv.Convert(strings.Join(args, " ")))
		return err
	}
	if _, err := io.Copy(w, conv.NewReader(cmd.InOrStdin())); err != nil {
		return fmt.Errorf("convert stdin: %w", err)
	}
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) > 0 {
		_, err := fmt.Fprintln(w, spionic.Normalize(strings.Join(args, " ")))
		return err
	}

	// No width or combination pattern spans a newline.
	r := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if _, werr := io.WriteString(w, spionic.Normalize(line)); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
}
