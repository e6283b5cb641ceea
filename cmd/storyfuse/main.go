package main

import (
	"os"

	"storyfuse.dev/storyfuse/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
