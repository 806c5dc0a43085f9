// Command inventory runs the inventory API and its maintenance tasks.
//
// @title                       Inventory API
// @version                     1.0
// @description                 Inventory, order and sales management with permission-gated routes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/fiori/inventory-api/cmd/inventory/commands"

func main() {
	commands.Execute()
}
