package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/recordapi/internal/adminctl"
)

func main() {
	if err := adminctl.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
