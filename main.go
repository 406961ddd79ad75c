package main

import "github.com/frahmantamala/asset-inventory/cmd"

func main() {
	cmd.Execute()
}
