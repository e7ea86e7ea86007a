//go:build tools

package tools

// Tool dependencies for man page generation.
// This file exists to ensure go mod tidy keeps these dependencies.
import (
	_ "github.com/spf13/cobra/doc"
)
