package main

import (
	"os"

	"github.com/netbirdio/msi-setup/client/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
