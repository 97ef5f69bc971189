package main

import "freetrack/internal/app"

// @title Freetrack API
// @version 1.0
// @description Freelance mission tracking: clients, contacts, sources and the interview pipeline board.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
