package main

import (
	"fxcross/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxcross API
// @version 1.0
// @description Cross rates between tracked currencies, triangulated through the provider base.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
