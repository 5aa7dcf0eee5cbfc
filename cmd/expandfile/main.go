package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/genopack"
	"github.com/dargueta/genopack/utilities/compression"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run expands the file named by args[1] into args[2] and returns the process
// exit status: 0 on success, 1 if expansion failed, 2 for bad arguments.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 3 || len(args) > 4 {
		fmt.Fprintf(
			stderr,
			"Expand a 2-bit packed genome.\nUsage: %s input-file output-file [header|tagged]\n",
			args[0])
		return 2
	}

	sourceFilePath := args[1]
	outputFilePath := args[2]

	options := compression.Options{}
	if len(args) == 4 {
		format, err := genopack.ParseFormat(args[3])
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			return 2
		}
		options.Format = format
	}

	sourceFile, errSrc := os.Open(sourceFilePath)
	if errSrc != nil {
		fmt.Fprintf(
			stderr, "Failed to open file for reading: `%v`: %s\n", sourceFilePath, errSrc)
		return 1
	}
	defer sourceFile.Close()

	outFile, errOut := os.Create(outputFilePath)
	if errOut != nil {
		fmt.Fprintf(
			stderr, "Failed to open file for writing: `%v`: %s\n", outputFilePath, errOut)
		return 1
	}

	nWritten, err := compression.Expand(sourceFile, outFile, options)
	closeErr := outFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputFilePath)
		fmt.Fprintf(stderr, "Error expanding file: %s\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Expanded input file to %d symbols.\n", nWritten)
	return 0
}
