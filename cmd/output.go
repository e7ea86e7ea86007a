package cmd

import (
	"io"
	"os"
)

var outWriterFunc = func() io.Writer { return os.Stdout }

func init() {
	outWriterFunc = func() io.Writer { return rootCmd.OutOrStdout() }
}

func outWriter() io.Writer {
	return outWriterFunc()
}
