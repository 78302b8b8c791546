package main

import (
	appfx "Finboard/internal/fx"

	"go.uber.org/fx"
)

// @title Finboard API
// @version 1.0
// @description Personal finance dashboard: salaries, expenses, savings goals and shared reports.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
