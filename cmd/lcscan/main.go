// cmd/lcscan/main.go
package main

import (
	"lcscan/internal/app"
	"lcscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
