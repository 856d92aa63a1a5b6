package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wifiscan/msgproc/pkg/app"
	"github.com/wifiscan/msgproc/pkg/cmd/completion"
	"github.com/wifiscan/msgproc/pkg/transcoder"
)

// ErrUsage is returned when the flags do not select a runnable mode.
var ErrUsage = errors.New("usage error")

type options struct {
	file             string
	jsonInput        string
	output           string
	compress         bool
	decompress       bool
	base64Input      string
	firehose         bool
	verbose          bool
	recordID         string
	generateRecordID bool
}

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New()
	root := NewRootCommand(a, version, commit)
	err := root.ExecuteContext(ctx)
	_ = a.Log.Sync()
	return err
}

// NewRootCommand returns the msgproc command bound to a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	var o options

	root := &cobra.Command{
		Use:   "msgproc",
		Short: "WiFi scan message processor for delivery stream testing",
		Long:  "Compress WiFi scan JSON messages with gzip and encode them as base64, optionally wrapped in a delivery stream envelope, or reverse the process to verify a payload.",
		Example: `  msgproc --compress --file sample_data.json
  msgproc --compress --json '{"ssid":"test","rssi":-65}' --firehose
  msgproc --decompress --base64 <encoded_string>`,
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.Init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case o.decompress:
				if o.base64Input == "" {
					return fmt.Errorf("%w: --decompress requires --base64", ErrUsage)
				}
				return runDecompress(a, o)
			case o.compress:
				return runCompress(a, o)
			default:
				_ = cmd.Help()
				return fmt.Errorf("%w: specify --compress or --decompress", ErrUsage)
			}
		},
	}

	root.Flags().StringVarP(&o.file, "file", "f", "", "Input JSON file path")
	root.Flags().StringVarP(&o.jsonInput, "json", "j", "", "Input JSON string")
	root.Flags().StringVarP(&o.output, "output", "o", "", "Output file path")
	root.Flags().BoolVar(&o.compress, "compress", false, "Compress and encode message")
	root.Flags().BoolVar(&o.decompress, "decompress", false, "Decompress base64 encoded data")
	root.Flags().StringVarP(&o.base64Input, "base64", "b", "", "Base64 encoded data to decompress")
	root.Flags().BoolVar(&o.firehose, "firehose", false, "Create a delivery stream envelope")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	root.Flags().StringVar(&o.recordID, "record-id", "", "Record ID to attach to the delivery stream envelope")
	root.Flags().BoolVar(&o.generateRecordID, "generate-record-id", false, "Attach a random UUID record ID to the delivery stream envelope")
	root.PersistentFlags().StringVar(&a.LogLevel, "log-level", "warn", "Log level: [debug|info|warn|error]")

	root.MarkFlagsMutuallyExclusive("record-id", "generate-record-id")
	if err := root.MarkFlagFilename("file", "json"); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
	if err := root.RegisterFlagCompletionFunc("log-level", completeLogLevel); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	root.AddCommand(completion.NewCommand(root, a))

	return root
}

func completeLogLevel(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
}

func loadMessage(o options) (transcoder.Message, error) {
	switch {
	case o.file != "":
		return transcoder.LoadMessage(o.file)
	case o.jsonInput != "":
		return transcoder.ParseMessage([]byte(o.jsonInput))
	default:
		return transcoder.Message{}, fmt.Errorf("%w: specify --file or --json for compression", ErrUsage)
	}
}

func runCompress(a *app.App, o options) error {
	m, err := loadMessage(o)
	if err != nil {
		return err
	}

	if o.firehose {
		return runFirehose(a, o, m)
	}

	res, err := a.Transcoder.Process(m)
	if err != nil {
		return err
	}

	if o.verbose {
		fmt.Fprintln(a.OutWriter, "=== Processing Results ===")
		fmt.Fprintf(a.OutWriter, "Original size: %d bytes\n", res.OriginalSize)
		fmt.Fprintf(a.OutWriter, "Compressed size: %d bytes\n", res.CompressedSize)
		fmt.Fprintf(a.OutWriter, "Encoded size: %d bytes\n", res.EncodedSize)
		fmt.Fprintf(a.OutWriter, "Compression ratio: %v%%\n", res.CompressionRatio)
		fmt.Fprintf(a.OutWriter, "Processing timestamp: %s\n", res.Timestamp())
		fmt.Fprintln(a.OutWriter)
	}

	if o.output != "" {
		if err := transcoder.WriteResult(res, o.output); err != nil {
			return err
		}
		a.Log.Infow("result written", "path", o.output)
		fmt.Fprintf(a.OutWriter, "Results saved to: %s\n", o.output)
		return nil
	}

	fmt.Fprintln(a.OutWriter, "Base64 encoded data:")
	fmt.Fprintln(a.OutWriter, res.Encoded)
	return nil
}

func runFirehose(a *app.App, o options, m transcoder.Message) error {
	recordID := o.recordID
	if o.generateRecordID {
		recordID = uuid.NewString()
	}

	env, err := a.Transcoder.Envelope(m, recordID)
	if err != nil {
		return err
	}

	if o.verbose {
		fmt.Fprintln(a.OutWriter, "=== Firehose Payload Created ===")
		fmt.Fprintf(a.OutWriter, "Stream name: %s\n", env.StreamName)
		if env.Record.RecordID != "" {
			fmt.Fprintf(a.OutWriter, "Record ID: %s\n", env.Record.RecordID)
		}
		fmt.Fprintf(a.OutWriter, "Data size: %d characters\n", len(env.Record.Data))
		fmt.Fprintln(a.OutWriter)
	}

	if o.output != "" {
		if err := transcoder.WriteEnvelope(env, o.output); err != nil {
			return err
		}
		a.Log.Infow("envelope written", "path", o.output)
		return nil
	}

	data, err := transcoder.MarshalIndent(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	a.PrintValue(data)
	return nil
}

func runDecompress(a *app.App, o options) error {
	rec, err := a.Transcoder.Recover(o.base64Input)
	if err != nil {
		return err
	}

	if o.verbose {
		fmt.Fprintln(a.OutWriter, "=== Decompression Results ===")
		fmt.Fprintf(a.OutWriter, "Decoded size: %d bytes\n", rec.DecodedSize)
		fmt.Fprintf(a.OutWriter, "Decompressed size: %d bytes\n", len(rec.Text))
		fmt.Fprintln(a.OutWriter)
	}

	fmt.Fprintln(a.OutWriter, "Decompressed message:")
	a.PrintValue([]byte(rec.Text))
	return nil
}
