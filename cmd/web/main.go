// @title           Gym & Grub API
// @version         1.0
// @description     Fitness and nutrition backend with Lightning subscription payments.
// @contact.name    Gym & Grub
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "gymgrub_backend/internal/app"

func main() {
	app.Run()
}
