package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RMahshie/scmplot/internal/serialport"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "echo",
		Short: "Print every line received on the serial port",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runEcho(cmd.Context(), cmd.OutOrStdout()) },
	})
}

func runEcho(parent context.Context, out io.Writer) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := serialport.Open(serialport.Config{Name: cfg.Serial.Port, Baud: cfg.Serial.Baud})
	if err != nil {
		return err
	}
	defer p.Close()
	go func() {
		<-ctx.Done()
		p.Close()
	}()

	if err := echoLines(p, out); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func echoLines(r io.Reader, out io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			fmt.Fprintf(out, "Received: %q\n", line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
