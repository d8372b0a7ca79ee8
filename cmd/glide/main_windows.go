//go:build windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "glide is not supported on Windows. Command paging needs a Unix pseudo terminal.")
	os.Exit(1)
}
