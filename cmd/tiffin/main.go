// Command tiffin runs the TiffinCRM API server and its admin commands.
package main

import "github.com/mesh-intelligence/tiffincrm/internal/cli"

func main() {
	cli.Main()
}
