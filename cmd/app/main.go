package main

import (
	"github.com/moviehistory/core/internal/app"
	"github.com/moviehistory/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
