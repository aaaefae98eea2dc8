// cmd/main.go
package main

import (
	"student-records-api/app"
)

// @title           Student Records API
// @version         1.0
// @description     Student records management service with token authentication and JSON/XML/HTML response negotiation.

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-access-token
func main() {
	app.Run()
}
