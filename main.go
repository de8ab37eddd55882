package main

import "lead-capture-backend/cmd"

//go:generate swag init --parseDependency --output docs

// @title Lead Capture API
// @version 1.0
// @description Lead capture, scoring and CRM sync for Chiral Robotics
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {
	cmd.Execute()
}
