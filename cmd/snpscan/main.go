// cmd/snpscan/main.go
package main

import (
	"snpscan/internal/app"
	"snpscan/internal/appshell"
)

func main() {
	appshell.Main(app.Run)
}
