package main

import (
	"github.com/mj1618/desktop-pilot/cmd"

	_ "github.com/mj1618/desktop-pilot/internal/platform/all"
)

func main() {
	cmd.Execute()
}
