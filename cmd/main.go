package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/genopack"
	"github.com/dargueta/genopack/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const usageExitCode = 2

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		logrus.Fatalf("fatal error: %s", err.Error())
	}
}

// runner holds the state shared by the commands of a single invocation.
type runner struct {
	logger *logrus.Entry
}

func newApp() *cli.App {
	r := &runner{}

	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "packed stream layout, `header` or `tagged`",
		Value:   genopack.FormatLengthHeader.String(),
		EnvVars: []string{"GENOPACK_FORMAT"},
	}
	inputFlag := &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "read from `FILE` instead of standard input",
		Value:   "-",
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write to `FILE` instead of standard output",
		Value:   "-",
	}

	return &cli.App{
		Name:  "genopack",
		Usage: "Pack genome sequences over {A, C, G, T} into two bits per symbol",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debugging information",
				EnvVars: []string{"GENOPACK_VERBOSE"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "`text` or `json`",
				Value:   "text",
				EnvVars: []string{"GENOPACK_LOG_FORMAT"},
			},
		},
		Before:       r.setUp,
		Action:       r.rejectMode,
		OnUsageError: onUsageError,
		Commands: []*cli.Command{
			{
				Name:         "compress",
				Aliases:      []string{"-"},
				Usage:        "Pack a plain-text sequence",
				Action:       r.compress,
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					formatFlag,
					inputFlag,
					outputFlag,
					&cli.BoolFlag{
						Name:    "ignore-whitespace",
						Aliases: []string{"w"},
						Usage:   "drop spaces and line breaks from the input before packing",
						EnvVars: []string{"GENOPACK_IGNORE_WHITESPACE"},
					},
				},
			},
			{
				Name:         "expand",
				Aliases:      []string{"+"},
				Usage:        "Unpack a packed stream back into plain text",
				Action:       r.expand,
				OnUsageError: onUsageError,
				Flags:        []cli.Flag{formatFlag, inputFlag, outputFlag},
			},
			{
				Name:         "inspect",
				Usage:        "Print the length header of packed files as CSV",
				ArgsUsage:    "FILE...",
				Action:       r.inspect,
				OnUsageError: onUsageError,
			},
		},
	}
}

// usageError makes `err` end the program with the usage exit code.
func usageError(err error) error {
	return cli.Exit(genopack.ErrUsage.Wrap(err), usageExitCode)
}

// onUsageError turns flag parsing failures, including a mode selector that
// looks like a flag, into usage errors.
func onUsageError(cCtx *cli.Context, err error, isSubcommand bool) error {
	return usageError(err)
}

func (r *runner) setUp(cCtx *cli.Context) error {
	logger, err := newLogger(cCtx)
	if err != nil {
		return usageError(err)
	}
	r.logger = logger
	return nil
}

// rejectMode is only reached if the first argument isn't a known command.
func (r *runner) rejectMode(cCtx *cli.Context) error {
	if !cCtx.Args().Present() {
		_ = cli.ShowAppHelp(cCtx)
		return cli.Exit(genopack.ErrUsage.WithMessage("no mode given"), usageExitCode)
	}
	return cli.Exit(
		genopack.ErrUsage.WithMessage(
			fmt.Sprintf("unrecognized mode %q", cCtx.Args().First())),
		usageExitCode,
	)
}

func (r *runner) options(cCtx *cli.Context) (compression.Options, error) {
	format, err := genopack.ParseFormat(cCtx.String("format"))
	if err != nil {
		return compression.Options{}, usageError(err)
	}
	return compression.Options{
		Format:           format,
		IgnoreWhitespace: cCtx.Bool("ignore-whitespace"),
	}, nil
}

func (r *runner) compress(cCtx *cli.Context) error {
	options, err := r.options(cCtx)
	if err != nil {
		return err
	}

	return r.transform(
		cCtx,
		func(input io.Reader, output io.Writer) error {
			n, err := compression.Compress(input, output, options)
			if err != nil {
				return err
			}
			r.logger.WithField("format", options.Format).Debugf("wrote %d packed bytes", n)
			return nil
		},
	)
}

func (r *runner) expand(cCtx *cli.Context) error {
	options, err := r.options(cCtx)
	if err != nil {
		return err
	}

	return r.transform(
		cCtx,
		func(input io.Reader, output io.Writer) error {
			n, err := compression.Expand(input, output, options)
			if err != nil {
				return err
			}
			r.logger.WithField("format", options.Format).Debugf("expanded %d symbols", n)
			return nil
		},
	)
}

// transform opens the input and output named by the command's flags, runs
// `operation` on them, and closes both no matter what. If the operation fails,
// a newly created output file is removed.
func (r *runner) transform(
	cCtx *cli.Context, operation func(io.Reader, io.Writer) error,
) (err error) {
	inputPath := cCtx.String("input")
	outputPath := cCtx.String("output")

	input, err := openInput(cCtx, inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := openOutput(cCtx, outputPath)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := output.Close()
		if closeErr != nil {
			closeErr = genopack.ErrIOFailed.Wrap(closeErr)
			if err != nil {
				err = multierror.Append(err, closeErr)
			} else {
				err = closeErr
			}
		}
		if err != nil && outputPath != "-" {
			r.logger.WithField("path", outputPath).Debug("removing incomplete output")
			_ = os.Remove(outputPath)
		}
	}()

	r.logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"output": outputPath,
	}).Debug("starting")
	return operation(input, output)
}

func (r *runner) inspect(cCtx *cli.Context) error {
	if !cCtx.Args().Present() {
		return cli.Exit(genopack.ErrUsage.WithMessage("no files given"), usageExitCode)
	}

	var result *multierror.Error
	reports := []*compression.StreamInfo{}
	for _, path := range cCtx.Args().Slice() {
		info, err := inspectFile(path)
		if err != nil {
			r.logger.WithField("path", path).Error(err.Error())
			result = multierror.Append(result, err)
			continue
		}
		if info.Truncated {
			r.logger.WithField("path", path).Warnf(
				"stream is %d bytes short", info.ExpectedSize-info.ActualSize)
		}
		reports = append(reports, &info)
	}

	err := gocsv.Marshal(&reports, cCtx.App.Writer)
	if err != nil {
		result = multierror.Append(result, genopack.ErrIOFailed.Wrap(err))
	}
	return result.ErrorOrNil()
}

func inspectFile(path string) (compression.StreamInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return compression.StreamInfo{}, genopack.ErrIOFailed.Wrap(err)
	}
	defer file.Close()

	info, err := compression.Inspect(file)
	if err != nil {
		return compression.StreamInfo{}, err
	}
	info.Path = path
	return info, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func openInput(cCtx *cli.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cCtx.App.Reader), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, genopack.ErrIOFailed.Wrap(err)
	}
	return file, nil
}

func openOutput(cCtx *cli.Context, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cCtx.App.Writer}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, genopack.ErrIOFailed.Wrap(err)
	}
	return file, nil
}
