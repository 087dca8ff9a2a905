package main

import "github.com/frahmantamala/commerce-management/cmd"

func main() {
	cmd.Execute()
}
